package main

import (
	"context"
	"time"

	"galacticos-backend/cmd/league-cli/cmd"
	"galacticos-backend/lib/configutil"
	"galacticos-backend/lib/scrapers/csi"
	"galacticos-backend/lib/serviceutil"
	"galacticos-backend/lib/telemetry"
)

type Config struct {
	LeagueUrl       string `json:"league_url"`
	TeamNameSource  string `json:"team_name_source"`
	TeamNameDisplay string `json:"team_name_display"`
	TeamBadge       string `json:"team_badge"`
	RelayUrl        string `json:"relay_url"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
}

func main() {
	telemetry.SetupFromEnv(context.Background(), "league-cli")

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	scraper, err := csi.New(csi.Options{
		LeagueUrl:       config.LeagueUrl,
		TeamNameSource:  config.TeamNameSource,
		TeamNameDisplay: config.TeamNameDisplay,
		TeamBadge:       config.TeamBadge,
		RelayUrl:        config.RelayUrl,
		Timeout:         time.Duration(config.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		serviceutil.Fatal("failed to create scraper", err)
	}
	cmd.Scraper = scraper

	cmd.Execute()
}
