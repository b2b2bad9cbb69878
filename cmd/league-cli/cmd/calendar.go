package cmd

import (
	"fmt"

	"galacticos-backend/lib/scrapers/csi"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func formatResult(match csi.CalendarMatch) string {
	if match.Result == nil {
		if match.Played {
			return "played"
		}
		return "-"
	}
	return fmt.Sprintf("%d - %d", match.Result.Home, match.Result.Away)
}

func formatSide(isHome bool) string {
	if isHome {
		return "home"
	}
	return "away"
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Prints the season calendar with results so far.",
	Run: func(cmd *cobra.Command, args []string) {
		data := fetchLeagueData(cmd.Context())

		t := newTable()
		t.AppendHeader(table.Row{"Date", "Time", "Opponent", "H/A", "Result", "Venue"})
		for _, m := range data.Matches {
			t.AppendRow(table.Row{
				m.Date, m.Time, m.Opponent,
				formatSide(m.IsHome), formatResult(m), m.Venue,
			})
		}
		t.Render()

		if data.NextMatch != nil {
			fmt.Printf(
				"next: %s %s vs %s (%s)\n",
				data.NextMatch.Date, data.NextMatch.Time,
				data.NextMatch.Opponent, formatSide(data.NextMatch.IsHome),
			)
		}
	},
}
