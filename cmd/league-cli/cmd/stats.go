package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates per-player statistics across every played fixture.",
	Run: func(cmd *cobra.Command, args []string) {
		data := fetchLeagueData(cmd.Context())

		stats, err := Scraper.AggregatePlayerStats(cmd.Context(), data.Matches)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Player", "Goals", "Yellow", "Red", "Apps"})
		for _, s := range stats {
			t.AppendRow(table.Row{s.Name, s.Goals, s.YellowCards, s.RedCards, s.Appearances})
		}
		t.Render()
	},
}
