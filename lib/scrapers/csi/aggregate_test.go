package csi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func goalEvent(player string) MatchEvent {
	return MatchEvent{Time: "10'", Type: EventGoal, Player: player, Side: SideHome}
}

func TestMergerCountsGoalsAndAppearances(t *testing.T) {
	merger := newStatsMerger()

	// the same player scores once in each of two fixtures
	merger.addFixture(&MatchDetails{
		Scorers: []string{"Rossi M."},
		Events:  []MatchEvent{goalEvent("Rossi M.")},
	})
	merger.addFixture(&MatchDetails{
		Scorers: []string{"Rossi M."},
		Events:  []MatchEvent{goalEvent("Rossi M.")},
	})

	stats := merger.finish()
	require.Len(t, stats, 1)
	require.Equal(t, 2, stats[0].Goals)
	require.Equal(t, 2, stats[0].Appearances)
}

func TestMergerAppearanceOncePerFixture(t *testing.T) {
	merger := newStatsMerger()

	// a brace in a single fixture is still one appearance
	merger.addFixture(&MatchDetails{
		Scorers: []string{"Rossi M."},
		Events: []MatchEvent{
			goalEvent("Rossi M."),
			goalEvent("Rossi M."),
			{Time: "30'", Type: EventYellowCard, Player: "Rossi M.", Side: SideHome},
		},
	})

	stats := merger.finish()
	require.Len(t, stats, 1)
	require.Equal(t, 2, stats[0].Goals)
	require.Equal(t, 1, stats[0].YellowCards)
	require.Equal(t, 1, stats[0].Appearances)
}

func TestMergerNormalizesNameCasing(t *testing.T) {
	merger := newStatsMerger()

	merger.addFixture(&MatchDetails{
		Scorers: []string{"Rossi M."},
		Events:  []MatchEvent{goalEvent("Rossi M.")},
	})
	merger.addFixture(&MatchDetails{
		Scorers: []string{"ROSSI M."},
		Events:  []MatchEvent{goalEvent("ROSSI M.")},
	})

	stats := merger.finish()
	require.Len(t, stats, 1)
	// name keeps the casing of the first occurrence
	require.Equal(t, "Rossi M.", stats[0].Name)
	require.Equal(t, 2, stats[0].Goals)
	require.Equal(t, 2, stats[0].Appearances)
}

func TestMergerFallbackScorerListMarksAppearancesOnly(t *testing.T) {
	merger := newStatsMerger()

	// no timeline: the flat scorer list records who appeared, but a
	// list entry is not evidence for any goal count
	merger.addFixture(&MatchDetails{
		Scorers: []string{"Rossi M.", "Bianchi L."},
		Events:  []MatchEvent{},
	})

	stats := merger.finish()
	require.Len(t, stats, 2)
	for _, s := range stats {
		require.Equal(t, 0, s.Goals)
		require.Equal(t, 1, s.Appearances)
	}
}

func TestMergerCardCounters(t *testing.T) {
	merger := newStatsMerger()

	merger.addFixture(&MatchDetails{
		Scorers: []string{},
		Events: []MatchEvent{
			{Time: "15'", Type: EventYellowCard, Player: "Verdi G.", Side: SideAway},
			{Time: "80'", Type: EventRedCard, Player: "Verdi G.", Side: SideAway},
			{Time: "55'", Type: EventSubstitution, Player: "Neri A.", Side: SideHome},
		},
	})

	stats := merger.finish()
	require.Len(t, stats, 2)

	var verdi AggregatedPlayerStats
	for _, s := range stats {
		if s.Name == "Verdi G." {
			verdi = s
		}
	}
	require.Equal(t, 1, verdi.YellowCards)
	require.Equal(t, 1, verdi.RedCards)
	require.Equal(t, 0, verdi.Goals)
	require.Equal(t, 1, verdi.Appearances)
}

func TestMergerSortsByGoals(t *testing.T) {
	merger := newStatsMerger()

	merger.addFixture(&MatchDetails{
		Scorers: []string{"Unico U."},
		Events:  []MatchEvent{goalEvent("Unico U.")},
	})
	merger.addFixture(&MatchDetails{
		Scorers: []string{"Doppietta D."},
		Events:  []MatchEvent{goalEvent("Doppietta D."), goalEvent("Doppietta D.")},
	})

	stats := merger.finish()
	require.Len(t, stats, 2)
	require.Equal(t, "Doppietta D.", stats[0].Name)
	require.Equal(t, "Unico U.", stats[1].Name)
}
