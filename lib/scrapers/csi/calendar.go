package csi

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"galacticos-backend/lib/textutil"
	"galacticos-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

var trailingParenRegex = regexp.MustCompile(`\(\d+.*?\)$`)
var digitsRegex = regexp.MustCompile(`^\d+$`)

// parseKickoff combines a DD/MM/YY date and an HH:MM time into a
// single timestamp in the upstream's local timezone. Two-digit years
// are read as 2000+YY. A bad time degrades to midnight, a bad date
// fails the whole fixture.
func parseKickoff(dateStr, timeStr string) (time.Time, error) {
	dateParts := strings.Split(strings.TrimSpace(dateStr), "/")
	if len(dateParts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", dateStr)
	}
	day, err1 := strconv.Atoi(dateParts[0])
	month, err2 := strconv.Atoi(dateParts[1])
	year, err3 := strconv.Atoi(dateParts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("malformed date %q", dateStr)
	}
	if year < 100 {
		year += 2000
	}

	hours, minutes := 0, 0
	timeParts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(timeParts) == 2 {
		h, err1 := strconv.Atoi(timeParts[0])
		m, err2 := strconv.Atoi(timeParts[1])
		if err1 == nil && err2 == nil {
			hours, minutes = h, m
		}
	}

	return time.Date(year, time.Month(month), day, hours, minutes, 0, 0, timezone.Location), nil
}

// The score's location in the fixture markup has changed shape over
// time, so extraction is an ordered cascade of independent strategies:
// the first one to yield two non-negative integers wins. Collapsing
// these into one path would silently lose scores on older or future
// document variants.
type scoreStrategy struct {
	name    string
	extract func(el *goquery.Selection) *Result
}

var scoreStrategies = []scoreStrategy{
	{"badge", scoreFromBadge},
	{"semantic-spans", scoreFromSemanticSpans},
	{"last-column", scoreFromLastColumn},
}

func parseScorePair(home, away string) *Result {
	h, err1 := strconv.Atoi(strings.TrimSpace(home))
	a, err2 := strconv.Atoi(strings.TrimSpace(away))
	if err1 != nil || err2 != nil || h < 0 || a < 0 {
		return nil
	}
	return &Result{Home: h, Away: a}
}

// badge-styled element whose text holds both numbers around a dash
// (the oldest layout).
func scoreFromBadge(el *goquery.Selection) *Result {
	badge := el.Find(".badge.bg-primary, .badge.bg-secondary, .badge.bg-danger, .result")
	if badge.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(badge.Text())
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	return parseScorePair(parts[0], parts[1])
}

// inline spans carrying the text-secondary/text-primary style markers;
// the first two pure-digit tokens are the score.
func scoreFromSemanticSpans(el *goquery.Selection) *Result {
	var digits []string
	el.Find("span.text-secondary-400, span.text-secondary-700, span.text-secondary-500, span.text-primary-700").
		Each(func(_ int, span *goquery.Selection) {
			text := strings.TrimSpace(span.Text())
			if digitsRegex.MatchString(text) {
				digits = append(digits, text)
			}
		})
	if len(digits) < 2 {
		return nil
	}
	return parseScorePair(digits[0], digits[1])
}

// the last of the element's top-level flex columns holds two nested
// numeric spans (the newest layout).
func scoreFromLastColumn(el *goquery.Selection) *Result {
	columns := el.ChildrenFiltered(".d-flex.flex-column")
	if columns.Length() < 2 {
		return nil
	}
	spans := columns.Last().Find("span > span")
	if spans.Length() < 2 {
		return nil
	}
	first := strings.TrimSpace(spans.Eq(0).Text())
	second := strings.TrimSpace(spans.Eq(1).Text())
	if !digitsRegex.MatchString(first) || !digitsRegex.MatchString(second) {
		return nil
	}
	return parseScorePair(first, second)
}

func extractScore(el *goquery.Selection) *Result {
	for _, strategy := range scoreStrategies {
		if result := strategy.extract(el); result != nil {
			return result
		}
	}
	return nil
}

// parseCalendar scans every fixture-link element and keeps the ones
// mentioning the tracked team; the upstream page lists the whole
// league round in the same document.
func (s *Scraper) parseCalendar(ctx context.Context, doc *goquery.Document, now time.Time) []CalendarMatch {
	matches := []CalendarMatch{}

	doc.Find(".row-card a.btn-gara").Each(func(_ int, el *goquery.Selection) {
		if !strings.Contains(el.Text(), s.opts.TeamNameSource) {
			return
		}

		dateCol := el.Find("div.d-flex.flex-column").First()
		dateStr := strings.TrimSpace(dateCol.Find("span").First().Text())
		timeStr := strings.TrimSpace(dateCol.Find("span").Last().Text())

		kickoff, err := parseKickoff(dateStr, timeStr)
		if err != nil {
			slog.WarnContext(ctx, "skipping fixture with unparseable kickoff", "date", dateStr, "time", timeStr)
			return
		}

		teams := el.Find(".nome-squadra")
		homeTeam := textutil.CleanLabel(teams.Eq(0).Text())
		awayTeam := textutil.CleanLabel(teams.Eq(1).Text())

		isHome := homeTeam == s.opts.TeamNameSource
		opponent := homeTeam
		if isHome {
			opponent = awayTeam
		}

		venue := el.AttrOr("data-bs-title", "")
		venue = strings.TrimSpace(trailingParenRegex.ReplaceAllString(venue, ""))

		result := extractScore(el)
		detailUrl := s.absolutize(el.AttrOr("href", ""))

		matches = append(matches, CalendarMatch{
			Id:        fmt.Sprintf("%s-%s", kickoff.Format("2006-01-02"), textutil.Slugify(opponent)),
			Date:      dateStr,
			Time:      timeStr,
			Kickoff:   kickoff,
			Opponent:  opponent,
			Venue:     venue,
			IsHome:    isHome,
			Played:    result != nil || kickoff.Before(now),
			Result:    result,
			DetailUrl: detailUrl,
		})
	})

	slices.SortFunc(matches, func(a, b CalendarMatch) int {
		au := a.Kickoff.Unix()
		bu := b.Kickoff.Unix()
		if au < bu {
			return -1
		}
		if au > bu {
			return 1
		}
		return 0
	})

	return matches
}

func nextMatch(matches []CalendarMatch, now time.Time) *NextMatch {
	for _, m := range matches {
		if m.Kickoff.After(now) {
			return &NextMatch{
				Date:     m.Date,
				Time:     m.Time,
				Opponent: m.Opponent,
				Venue:    m.Venue,
				IsHome:   m.IsHome,
			}
		}
	}
	return nil
}
