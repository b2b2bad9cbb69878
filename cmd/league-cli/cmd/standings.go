package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(standingsCmd)
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Prints the current league table.",
	Run: func(cmd *cobra.Command, args []string) {
		data := fetchLeagueData(cmd.Context())

		t := newTable()
		t.AppendHeader(table.Row{"#", "Team", "Pt", "P", "W", "D", "L", "GF", "GA", "GD"})
		for _, s := range data.Standings {
			t.AppendRow(table.Row{
				s.Rank, s.Team, s.Points, s.Played,
				s.Won, s.Drawn, s.Lost,
				s.GoalsFor, s.GoalsAgainst, s.GoalDiff,
			})
		}
		t.Render()
	},
}
