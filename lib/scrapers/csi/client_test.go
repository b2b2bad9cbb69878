package csi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"galacticos-backend/lib/telemetry"
	"galacticos-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestLeagueDataEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:csi")
	defer cleanup()

	kickoffPast := timezone.Now().AddDate(0, 0, -7)
	kickoffFuture := timezone.Now().AddDate(0, 0, 7)

	mux := http.NewServeMux()
	mux.HandleFunc("/league", func(w http.ResponseWriter, r *http.Request) {
		page := "<html><body>" +
			standingsTable(standingsRow(1, "Uso Sforzatica G")+standingsRow(2, "Real Borgo")) +
			fixtureCard(
				kickoffPast.Format("02/01/06"), "20:30",
				"Uso Sforzatica G", "Real Borgo",
				"Campo 1", scoreBadge,
			) +
			fixtureCard(
				kickoffFuture.Format("02/01/06"), "18:00",
				"Prossima Sfida", "Uso Sforzatica G",
				"Campo 2", "",
			) +
			"</body></html>"
		fmt.Fprint(w, page)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	scraper, err := New(Options{
		LeagueUrl:       server.URL + "/league",
		TeamNameSource:  "Uso Sforzatica G",
		TeamNameDisplay: "GALACTICOS VB",
		TeamBadge:       "/assets/logo.webp",
	})
	require.NoError(t, err)

	data, err := scraper.LeagueData(context.Background())
	require.NoError(t, err)
	require.False(t, data.Empty())

	require.Len(t, data.Standings, 2)
	require.Equal(t, "GALACTICOS VB", data.Standings[0].Team)

	require.Len(t, data.Matches, 2)
	require.True(t, data.Matches[0].Played)
	require.NotNil(t, data.Matches[0].Result)
	require.False(t, data.Matches[1].Played)

	require.NotNil(t, data.NextMatch)
	require.Equal(t, "Prossima Sfida", data.NextMatch.Opponent)
}

func TestAggregateEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:csi")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/gara/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>"+eventRow("left", "12'", "fa fa-futbol", "Rossi M.", "1 - 0")+"</body></html>")
	})
	mux.HandleFunc("/gara/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>"+eventRow("left", "40'", "fa fa-futbol", "Rossi M.", "1 - 0")+"</body></html>")
	})
	mux.HandleFunc("/gara/3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	scraper, err := New(Options{
		LeagueUrl:       server.URL + "/league",
		TeamNameSource:  "Uso Sforzatica G",
		TeamNameDisplay: "GALACTICOS VB",
	})
	require.NoError(t, err)

	matches := []CalendarMatch{
		{Id: "a", Played: true, DetailUrl: server.URL + "/gara/1"},
		{Id: "b", Played: true, DetailUrl: server.URL + "/gara/2"},
		// the failing fixture contributes nothing but does not break
		// the rest of the batch
		{Id: "c", Played: true, DetailUrl: server.URL + "/gara/3"},
		// unplayed and detail-less fixtures are not fetched at all
		{Id: "d", Played: false, DetailUrl: server.URL + "/gara/1"},
		{Id: "e", Played: true, DetailUrl: ""},
	}

	stats, err := scraper.AggregatePlayerStats(context.Background(), matches)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, "Rossi M.", stats[0].Name)
	require.Equal(t, 2, stats[0].Goals)
	require.Equal(t, 2, stats[0].Appearances)
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	scraper, err := New(Options{LeagueUrl: server.URL})
	require.NoError(t, err)

	_, _, err = scraper.Fetch(context.Background(), server.URL)
	var statusErr StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.Status)
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	scraper, err := New(Options{
		LeagueUrl: server.URL,
		Timeout:   50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, _, err = scraper.Fetch(context.Background(), server.URL)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestFetchCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	scraper, err := New(Options{LeagueUrl: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err = scraper.Fetch(ctx, server.URL)
	require.Error(t, err)
}

func TestRelayRewrite(t *testing.T) {
	scraper, err := New(Options{
		LeagueUrl: "https://live.example.it/league",
		RelayUrl:  "https://relay.example.workers.dev",
	})
	require.NoError(t, err)

	rewritten := scraper.requestUrl("https://live.example.it/gara/42?x=1")
	require.Equal(
		t,
		"https://relay.example.workers.dev?url=https%3A%2F%2Flive.example.it%2Fgara%2F42%3Fx%3D1",
		rewritten,
	)

	direct := testScraper(t)
	require.Equal(t, "https://live.example.it/gara/42", direct.requestUrl("https://live.example.it/gara/42"))
}
