package main

import (
	"context"
	"time"

	"galacticos-backend/lib/configutil"
	"galacticos-backend/lib/scrapers/csi"
	"galacticos-backend/lib/serviceutil"
	"galacticos-backend/lib/telemetry"
	"galacticos-backend/services/league"
)

type Config struct {
	LeagueUrl       string `json:"league_url"`
	TeamNameSource  string `json:"team_name_source"`
	TeamNameDisplay string `json:"team_name_display"`
	TeamBadge       string `json:"team_badge"`
	RelayUrl        string `json:"relay_url"`
	TimeoutSeconds  int    `json:"timeout_seconds"`

	Port               int    `json:"port"`
	RevalidateToken    string `json:"revalidate_token"`
	UpstreamHostSuffix string `json:"upstream_host_suffix"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8460
	}

	t, err := telemetry.SetupFromEnv(ctx, "leagued")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

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

	server := league.NewServer(league.NewService(scraper), league.ServerOptions{
		RevalidateToken:    config.RevalidateToken,
		UpstreamHostSuffix: config.UpstreamHostSuffix,
	})
	go serviceutil.StartHttpServer(config.Port, server.Router())

	<-ctx.Done()
}
