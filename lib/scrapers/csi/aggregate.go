package csi

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"galacticos-backend/lib/textutil"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

// detailFetchWorkers bounds the fan-out across fixture detail pages.
// The upstream origin rejects traffic that looks automated, so this
// stays small.
const detailFetchWorkers = 6

// AggregatePlayerStats fetches the detail page of every completed
// fixture concurrently and merges its events into per-player cumulative
// statistics. A fixture whose detail fetch fails contributes nothing;
// the rest are unaffected.
func (s *Scraper) AggregatePlayerStats(ctx context.Context, matches []CalendarMatch) ([]AggregatedPlayerStats, error) {
	ctx, span := tracer.Start(ctx, "scraper:AggregatePlayerStats")
	defer span.End()

	var completed []CalendarMatch
	for _, m := range matches {
		if m.Played && m.DetailUrl != "" {
			completed = append(completed, m)
		}
	}
	span.SetAttributes(attribute.Int("completed_fixtures", len(completed)))

	workers, err := ants.NewPool(detailFetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	results := make(chan *MatchDetails, len(completed))

	var wg sync.WaitGroup
	for _, match := range completed {
		match := match
		wg.Add(1)
		err := workers.Submit(func() {
			defer wg.Done()

			details, err := s.MatchDetails(ctx, match.DetailUrl)
			if err != nil {
				slog.WarnContext(
					ctx, "fixture detail fetch failed, skipping",
					"id", match.Id,
					"url", match.DetailUrl,
					"err", err,
				)
				return
			}
			results <- details
		})
		if err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	// merging happens on this side only, after each fixture's fetch
	// has resolved; the map is never written from in-flight fetches
	merger := newStatsMerger()
	for details := range results {
		merger.addFixture(details)
	}

	stats := merger.finish()
	span.SetAttributes(attribute.Int("players", len(stats)))
	slog.DebugContext(ctx, "aggregated player stats", "players", len(stats))
	return stats, nil
}

type statsMerger struct {
	byKey map[string]*AggregatedPlayerStats
}

func newStatsMerger() *statsMerger {
	return &statsMerger{byKey: make(map[string]*AggregatedPlayerStats)}
}

func (m *statsMerger) get(name string) *AggregatedPlayerStats {
	key := textutil.NormalizeKey(name)
	stats, ok := m.byKey[key]
	if !ok {
		stats = &AggregatedPlayerStats{Name: textutil.CleanLabel(name)}
		m.byKey[key] = stats
	}
	return stats
}

// addFixture merges one fixture's details. Appearances are counted
// from a per-fixture set and incremented exactly once per fixture: a
// player scoring twice in one match still appeared only once.
func (m *statsMerger) addFixture(details *MatchDetails) {
	if details == nil {
		return
	}

	appeared := make(map[string]bool)

	for _, event := range details.Events {
		if event.Player == "" {
			continue
		}
		stats := m.get(event.Player)
		appeared[textutil.NormalizeKey(event.Player)] = true

		switch event.Type {
		case EventGoal:
			stats.Goals++
		case EventYellowCard:
			stats.YellowCards++
		case EventRedCard:
			stats.RedCards++
		}
	}

	// the fallback scorer list only marks appearances. Goal counts
	// come from timeline events exclusively: a flat list entry gives
	// no per-goal information to count from.
	for _, scorer := range details.Scorers {
		if scorer == "" {
			continue
		}
		m.get(scorer)
		appeared[textutil.NormalizeKey(scorer)] = true
	}

	for key := range appeared {
		m.byKey[key].Appearances++
	}
}

func (m *statsMerger) finish() []AggregatedPlayerStats {
	stats := make([]AggregatedPlayerStats, 0, len(m.byKey))
	for _, s := range m.byKey {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Goals != stats[j].Goals {
			return stats[i].Goals > stats[j].Goals
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}
