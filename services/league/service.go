package league

import (
	"context"
	"log/slog"
	"time"

	"galacticos-backend/lib/cache"
	"galacticos-backend/lib/scrapers/csi"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/league")

// cache keys carry a version tag so a model change invalidates stale
// entries on deploy
const (
	leagueCacheKey = "league-data-v3"
	statsCacheKey  = "aggregated-player-stats-v2"
	cacheTtl       = time.Hour
)

// Extractor is the scraping capability the service depends on,
// implemented by *csi.Scraper.
type Extractor interface {
	LeagueData(ctx context.Context) (csi.LeagueData, error)
	MatchDetails(ctx context.Context, detailUrl string) (*csi.MatchDetails, error)
	AggregatePlayerStats(ctx context.Context, matches []csi.CalendarMatch) ([]csi.AggregatedPlayerStats, error)
	Fetch(ctx context.Context, target string) ([]byte, string, error)
}

// Service fronts the extraction engine with time-boxed caches so that
// page renders within the freshness window never re-trigger network
// fetches.
type Service struct {
	extractor Extractor
	league    *cache.Store[csi.LeagueData]
	stats     *cache.Store[[]csi.AggregatedPlayerStats]
}

func NewService(extractor Extractor) *Service {
	return &Service{
		extractor: extractor,
		league:    cache.NewStore[csi.LeagueData](cacheTtl),
		stats:     cache.NewStore[[]csi.AggregatedPlayerStats](cacheTtl),
	}
}

func emptyLeagueData() csi.LeagueData {
	return csi.LeagueData{
		Standings:  []csi.LeagueStanding{},
		TopScorers: []csi.TopScorer{},
		Matches:    []csi.CalendarMatch{},
	}
}

// LeagueData returns the current league snapshot. It never fails: a
// broken extraction yields an empty snapshot, which is not cached, so
// consumers stay renderable and the next caller retries.
func (s *Service) LeagueData(ctx context.Context) csi.LeagueData {
	ctx, span := tracer.Start(ctx, "service:LeagueData")
	defer span.End()

	data, err := s.league.Get(ctx, leagueCacheKey, func(ctx context.Context) (csi.LeagueData, bool, error) {
		data, err := s.extractor.LeagueData(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "league extraction failed", "err", err)
			return emptyLeagueData(), false, nil
		}
		return data, !data.Empty(), nil
	})
	if err != nil {
		return emptyLeagueData()
	}
	return data
}

// MatchDetails extracts one fixture's timeline. nil means no detail is
// available, which callers treat as missing data, not as a failure.
func (s *Service) MatchDetails(ctx context.Context, detailUrl string) *csi.MatchDetails {
	ctx, span := tracer.Start(ctx, "service:MatchDetails")
	defer span.End()

	details, err := s.extractor.MatchDetails(ctx, detailUrl)
	if err != nil {
		slog.WarnContext(ctx, "match detail extraction failed", "url", detailUrl, "err", err)
		return nil
	}
	return details
}

// AggregatedPlayerStats fans out across every completed fixture and
// merges per-player statistics, cached under the same freshness window
// as the snapshot.
func (s *Service) AggregatedPlayerStats(ctx context.Context) []csi.AggregatedPlayerStats {
	ctx, span := tracer.Start(ctx, "service:AggregatedPlayerStats")
	defer span.End()

	stats, err := s.stats.Get(ctx, statsCacheKey, func(ctx context.Context) ([]csi.AggregatedPlayerStats, bool, error) {
		data := s.LeagueData(ctx)
		stats, err := s.extractor.AggregatePlayerStats(ctx, data.Matches)
		if err != nil {
			slog.ErrorContext(ctx, "player stats aggregation failed", "err", err)
			return []csi.AggregatedPlayerStats{}, false, nil
		}
		return stats, len(stats) > 0, nil
	})
	if err != nil || stats == nil {
		return []csi.AggregatedPlayerStats{}
	}
	return stats
}

// Revalidate drops both cache entries so the next access re-runs the
// full extraction. Wired to an external trigger like a cron webhook.
func (s *Service) Revalidate(ctx context.Context) {
	_, span := tracer.Start(ctx, "service:Revalidate")
	defer span.End()

	s.league.Invalidate(leagueCacheKey)
	s.stats.Invalidate(statsCacheKey)
	slog.InfoContext(ctx, "league caches invalidated")
}
