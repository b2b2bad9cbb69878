package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <detail-url>",
	Short: "Prints the event timeline of a single fixture.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		details, err := Scraper.MatchDetails(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Time", "Type", "Player", "Side", "Score"})
		for _, e := range details.Events {
			t.AppendRow(table.Row{e.Time, string(e.Type), e.Player, string(e.Side), e.Score})
		}
		t.Render()

		if len(details.Scorers) > 0 {
			fmt.Println("scorers:", details.Scorers)
		}
	},
}
