// Package main запускает терминальный клиент трекера бонусов.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mmeshcher/bonus-tracker/internal/apiclient"
	"github.com/mmeshcher/bonus-tracker/internal/cli"
)

var CLI struct {
	Version kong.VersionFlag
	API     string `help:"Bonus tracker API address." env:"BONUS_API_URL" default:"http://localhost:8080"`
	Verbose bool   `short:"v" help:"Log client warnings to stderr."`

	Dashboard cli.DashboardCmd `cmd:"" help:"Show household earnings and upcoming dates." default:"1"`
	Tracked   cli.TrackedCmd   `cmd:"" help:"List a player's tracked bonuses."`
	Track     cli.TrackCmd     `cmd:"" help:"Start tracking a catalog bonus."`
	Status    cli.StatusCmd    `cmd:"" help:"Move a tracked bonus to a new status."`
	Catalog   cli.CatalogCmd   `cmd:"" help:"Browse available bonuses."`
	Calc      cli.CalcCmd      `cmd:"" help:"Estimate earnings for a deposit."`
	Settings  cli.SettingsCmd  `cmd:"" help:"Show or change player settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bonusctl"),
		kong.Description("Household bank bonus tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger := zap.NewNop()
	if CLI.Verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:    runCtx,
		Client: apiclient.NewClient(CLI.API, apiclient.WithLogger(logger)),
		Out:    os.Stdout,
		Logger: logger,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
