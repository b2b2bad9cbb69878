package cmd

import (
	"context"
	"fmt"
	"os"

	"galacticos-backend/lib/scrapers/csi"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var Scraper *csi.Scraper

var rootCmd = &cobra.Command{
	Use:   "league-cli",
	Short: "league-cli inspects the tracked league straight from the live site.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func fetchLeagueData(ctx context.Context) csi.LeagueData {
	data, err := Scraper.LeagueData(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return data
}
