package csi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func eventRow(side, clock, icon, player, score string) string {
	scoreMarkup := ""
	if score != "" {
		scoreMarkup = fmt.Sprintf("<h6>%s</h6>", score)
	}
	return fmt.Sprintf(`<div class="event-row">
	<span class="event-time">%s</span>
	<div class="event-icon"><i class="%s"></i></div>
	<div class="event-%s">%s <span class="badge">X</span>%s</div>
</div>`, clock, icon, side, player, scoreMarkup)
}

func TestParseMatchDetailsTimeline(t *testing.T) {
	page := "<html><body>" +
		eventRow("left", "12'", "fa fa-futbol", "Rossi M. (18)", "1 - 0") +
		eventRow("right", "25'", "fa fa-square text-warning", "Bianchi L. (4)", "") +
		eventRow("right", "38'", "fa fa-square text-danger", "Verdi G.", "") +
		eventRow("left", "51'", "fa fa-exchange", "Neri A. (7)", "") +
		eventRow("left", "60'", "fa fa-whistle", "", "") +
		"</body></html>"

	details := parseMatchDetails(docFromString(t, page))
	require.Len(t, details.Events, 5)

	goal := details.Events[0]
	require.Equal(t, EventGoal, goal.Type)
	require.Equal(t, "Rossi M.", goal.Player)
	require.Equal(t, SideHome, goal.Side)
	require.Equal(t, "12'", goal.Time)
	require.Equal(t, "1 - 0", goal.Score)

	require.Equal(t, EventYellowCard, details.Events[1].Type)
	require.Equal(t, SideAway, details.Events[1].Side)
	require.Equal(t, EventRedCard, details.Events[2].Type)
	require.Equal(t, EventSubstitution, details.Events[3].Type)
	require.Equal(t, EventOther, details.Events[4].Type)

	require.Equal(t, []string{"Rossi M."}, details.Scorers)
}

func TestParseMatchDetailsDeduplicatesScorers(t *testing.T) {
	page := "<html><body>" +
		eventRow("left", "12'", "fa fa-futbol", "Rossi M.", "1 - 0") +
		eventRow("left", "44'", "fa fa-futbol", "Rossi M.", "2 - 0") +
		eventRow("right", "70'", "fa fa-futbol", "Esposito C.", "2 - 1") +
		"</body></html>"

	details := parseMatchDetails(docFromString(t, page))
	require.Len(t, details.Events, 3)
	require.Equal(t, []string{"Rossi M.", "Esposito C."}, details.Scorers)
}

func TestParseMatchDetailsScorersTableFallback(t *testing.T) {
	page := `<html><body>
	<div><h5>Marcatori</h5></div>
	<table>
		<tr><td>Giocatore</td><td>Gol</td></tr>
		<tr><td>Rossi M.</td><td>2</td></tr>
		<tr><td>Bianchi L.</td><td>1</td></tr>
	</table>
	</body></html>`

	details := parseMatchDetails(docFromString(t, page))
	require.Empty(t, details.Events)
	require.Equal(t, []string{"Rossi M.", "Bianchi L."}, details.Scorers)
}

func TestParseMatchDetailsFallbackIgnoredWhenTimelinePresent(t *testing.T) {
	page := "<html><body>" +
		eventRow("left", "12'", "fa fa-futbol", "Rossi M.", "1 - 0") +
		`<div><h5>Marcatori</h5></div>
		<table><tr><td>Qualcun Altro</td></tr></table>
		</body></html>`

	details := parseMatchDetails(docFromString(t, page))
	require.Len(t, details.Events, 1)
	require.Equal(t, []string{"Rossi M."}, details.Scorers)
}

func TestParseMatchDetailsEmptyPage(t *testing.T) {
	details := parseMatchDetails(docFromString(t, "<html><body><p>404</p></body></html>"))
	require.Empty(t, details.Events)
	require.Empty(t, details.Scorers)
}
