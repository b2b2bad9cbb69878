package csi

import (
	"context"
	"log/slog"

	"galacticos-backend/lib/timezone"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LeagueData fetches the tracked league page and extracts the full
// snapshot: standings, top scorers, the fixture calendar and the next
// upcoming fixture. Every sub-extraction tolerates its structure being
// absent; only a failed fetch of the page itself is an error.
func (s *Scraper) LeagueData(ctx context.Context) (LeagueData, error) {
	ctx, span := tracer.Start(ctx, "scraper:LeagueData")
	defer span.End()

	doc, err := s.fetchDocument(ctx, s.opts.LeagueUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league page")
		return LeagueData{}, err
	}

	now := timezone.Now()
	matches := s.parseCalendar(ctx, doc, now)

	data := LeagueData{
		Standings:  s.parseStandings(ctx, doc),
		TopScorers: s.parseTopScorers(ctx, doc),
		NextMatch:  nextMatch(matches, now),
		Matches:    matches,
	}

	span.SetAttributes(
		attribute.Int("standings", len(data.Standings)),
		attribute.Int("top_scorers", len(data.TopScorers)),
		attribute.Int("matches", len(data.Matches)),
	)
	slog.DebugContext(
		ctx, "extracted league snapshot",
		"standings", len(data.Standings),
		"top_scorers", len(data.TopScorers),
		"matches", len(data.Matches),
	)

	return data, nil
}
