package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scorersCmd)
}

var scorersCmd = &cobra.Command{
	Use:   "scorers",
	Short: "Prints the league-wide top scorer chart.",
	Run: func(cmd *cobra.Command, args []string) {
		data := fetchLeagueData(cmd.Context())

		t := newTable()
		t.AppendHeader(table.Row{"#", "Player", "Team", "Goals"})
		for _, s := range data.TopScorers {
			t.AppendRow(table.Row{s.Rank, s.Player, s.Team, s.Goals})
		}
		t.Render()
	},
}
