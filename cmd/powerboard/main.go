package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"powerboard/internal/adapters/analytics"
	"powerboard/internal/adapters/browser"
	"powerboard/internal/adapters/bungie"
	"powerboard/internal/adapters/sqlite"
	"powerboard/internal/adapters/tui"
	"powerboard/internal/application"
	"powerboard/internal/config"
	"powerboard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.NewFile(cfg.LogFile, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	client := bungie.NewClient(cfg.APIKey, bungie.WithClientLogger(log))
	gateway := bungie.NewGateway(client, cfg.OAuthClientID, store, store, browser.NewOpener(), log)
	manifest := bungie.NewManifestService(client, store, log)
	source := bungie.NewCharacterSource(client, gateway, manifest, log)
	reporter := analytics.NewReporter(cfg.AnalyticsTrackingID, cfg.AnalyticsEnabled,
		analytics.WithReporterLogger(log))

	reconciler := application.NewReconciler(store, log)
	if err := reconciler.Load(); err != nil {
		return err
	}

	var app *tui.App
	controller := application.NewController(gateway, manifest, source, reporter,
		application.WithLogger(log),
		application.WithPollInterval(cfg.PollInterval),
		application.WithOnChange(func() { app.Notify() }),
	)
	app = tui.NewApp(controller, reconciler, reporter, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go controller.Run(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
