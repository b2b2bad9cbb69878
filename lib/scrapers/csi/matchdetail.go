package csi

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"galacticos-backend/lib/htmlutil"
	"galacticos-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var shirtNumberRegex = regexp.MustCompile(`\(\d+\)`)

// MatchDetails fetches a fixture's detail page and extracts its event
// timeline. When the page carries no timeline markup at all it falls
// back to the flat scorer table, which cannot recover cards or
// substitutions. A failed fetch or a page with nothing recognizable
// yields nil, which callers treat as "no detail available".
func (s *Scraper) MatchDetails(ctx context.Context, detailUrl string) (*MatchDetails, error) {
	ctx, span := tracer.Start(ctx, "scraper:MatchDetails")
	defer span.End()
	span.SetAttributes(attribute.String("url", detailUrl))

	doc, err := s.fetchDocument(ctx, detailUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch match detail page")
		return nil, err
	}

	details := parseMatchDetails(doc)
	span.SetAttributes(
		attribute.Int("events", len(details.Events)),
		attribute.Int("scorers", len(details.Scorers)),
	)
	slog.DebugContext(
		ctx, "extracted match details",
		"url", detailUrl,
		"events", len(details.Events),
		"scorers", len(details.Scorers),
	)
	return details, nil
}

func parseMatchDetails(doc *goquery.Document) *MatchDetails {
	details := &MatchDetails{
		Scorers: []string{},
		Events:  []MatchEvent{},
	}

	doc.Find(".event-row").Each(func(_ int, row *goquery.Selection) {
		event := parseEventRow(row)
		if event.Type == EventGoal && !slices.Contains(details.Scorers, event.Player) {
			details.Scorers = append(details.Scorers, event.Player)
		}
		details.Events = append(details.Events, event)
	})

	// older layouts have no timeline at all, just a flat scorer table
	if len(details.Events) == 0 {
		details.Scorers = parseScorersTable(doc)
	}

	return details
}

func parseEventRow(row *goquery.Selection) MatchEvent {
	eventTime := strings.TrimSpace(row.Find(".event-time").Text())

	side := SideAway
	detailsDiv := row.Find(".event-right")
	if left := row.Find(".event-left"); left.Length() > 0 {
		side = SideHome
		detailsDiv = left
	}

	// the player label is the div's own text with nested badges and
	// scores removed, minus a trailing shirt number like "(18)"
	player := strings.TrimSpace(htmlutil.OwnText(detailsDiv))
	if player == "" {
		player = strings.TrimSpace(detailsDiv.Find("span").First().Text())
	}
	if player == "" {
		player = strings.TrimSpace(detailsDiv.Text())
	}
	player = textutil.CleanLabel(shirtNumberRegex.ReplaceAllString(player, ""))

	score := strings.TrimSpace(detailsDiv.Find("h6").Text())

	iconClass := row.Find(".event-icon i").AttrOr("class", "")
	eventType := EventOther
	switch {
	case strings.Contains(iconClass, "fa-futbol"):
		eventType = EventGoal
	case strings.Contains(iconClass, "text-warning"):
		eventType = EventYellowCard
	case strings.Contains(iconClass, "text-danger"):
		eventType = EventRedCard
	case strings.Contains(iconClass, "fa-exchange"):
		eventType = EventSubstitution
	}

	return MatchEvent{
		Time:   eventTime,
		Type:   eventType,
		Player: player,
		Side:   side,
		Score:  score,
	}
}

// parseScorersTable locates the heading whose exact text is the
// scorers section title and reads the first column of the table that
// follows it.
func parseScorersTable(doc *goquery.Document) []string {
	scorers := []string{}

	header := htmlutil.LastWithText(doc, "h4, h5, h6, div, span, strong, b", func(text string) bool {
		return strings.TrimSpace(text) == "Marcatori"
	})
	if header == nil {
		return scorers
	}

	table := header.Closest("div").NextFiltered("table")
	if table.Length() == 0 {
		table = header.NextFiltered("table")
	}
	if table.Length() == 0 {
		return scorers
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		name := textutil.CleanLabel(cells.First().Text())
		if name == "" || name == "Giocatore" {
			return
		}
		if !slices.Contains(scorers, name) {
			scorers = append(scorers, name)
		}
	})

	return scorers
}
