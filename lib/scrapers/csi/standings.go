package csi

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"galacticos-backend/lib/htmlutil"
	"galacticos-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

func parseIntCell(sel *goquery.Selection) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(sel.Text()))
	if err != nil {
		return 0, false
	}
	return value, true
}

// teamLabel prefers the last nested span over the cell's raw text,
// since the upstream cells nest the name next to a badge image.
func teamLabel(cell *goquery.Selection) string {
	label := strings.TrimSpace(cell.Find("span").Last().Text())
	if label == "" {
		label = strings.TrimSpace(cell.Text())
	}
	return textutil.CleanLabel(label)
}

// parseStandings locates the league table by the "Pt" token in its
// header row. A missing table is non-fatal and yields no standings.
func (s *Scraper) parseStandings(ctx context.Context, doc *goquery.Document) []LeagueStanding {
	standings := []LeagueStanding{}

	table := htmlutil.TableWithHeader(doc, func(header string) bool {
		return strings.Contains(header, "Pt")
	})
	if table == nil {
		slog.WarnContext(ctx, "no standings table found in league page")
		return standings
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 10 {
			return
		}

		numbers := make([]int, 9)
		for i, cellIdx := range []int{0, 2, 3, 4, 5, 6, 7, 8, 9} {
			value, ok := parseIntCell(cells.Eq(cellIdx))
			if !ok {
				slog.DebugContext(ctx, "skipping standings row with unparseable cell", "cell", cellIdx)
				return
			}
			numbers[i] = value
		}

		teamCell := cells.Eq(1)
		team := teamLabel(teamCell)

		badge := ""
		if src, exists := teamCell.Find("img").Attr("src"); exists {
			badge = s.absolutize(src)
		}

		if team == s.opts.TeamNameSource {
			team = s.opts.TeamNameDisplay
			badge = s.opts.TeamBadge
		}

		standings = append(standings, LeagueStanding{
			Rank:         numbers[0],
			Team:         team,
			Badge:        badge,
			Points:       numbers[1],
			Played:       numbers[2],
			Won:          numbers[3],
			Drawn:        numbers[4],
			Lost:         numbers[5],
			GoalsFor:     numbers[6],
			GoalsAgainst: numbers[7],
			GoalDiff:     numbers[8],
		})
	})

	return standings
}

// parseTopScorers locates the scorer ranking by the "Giocatore" and
// "Gol" tokens in its header row. Rank is assigned by row order.
func (s *Scraper) parseTopScorers(ctx context.Context, doc *goquery.Document) []TopScorer {
	scorers := []TopScorer{}

	table := htmlutil.TableWithHeader(doc, func(header string) bool {
		return strings.Contains(header, "Giocatore") && strings.Contains(header, "Gol")
	})
	if table == nil {
		slog.WarnContext(ctx, "no top scorers table found in league page")
		return scorers
	}

	table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(scorers) >= 50 {
			return false
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		player := textutil.CleanLabel(cells.Eq(0).Text())
		goals, ok := parseIntCell(cells.Eq(1))
		if !ok {
			return true
		}

		team := teamLabel(cells.Eq(2))
		if team == s.opts.TeamNameSource {
			team = s.opts.TeamNameDisplay
		}

		scorers = append(scorers, TopScorer{
			Rank:   len(scorers) + 1,
			Player: player,
			Goals:  goals,
			Team:   team,
		})
		return true
	})

	return scorers
}
