package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"powerboard/internal/adapters/browser"
	"powerboard/internal/adapters/bungie"
	"powerboard/internal/adapters/sqlite"
	"powerboard/internal/config"
	"powerboard/internal/domain"
	"powerboard/internal/logging"
)

var (
	dataDir string
	verbose bool

	store    *sqlite.Store
	gateway  *bungie.Gateway
	manifest *bungie.ManifestService
	source   *bungie.CharacterSource
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "powerboard-cli",
	Short: "CLI for Destiny 2 character power",
	Long: `powerboard-cli inspects your Destiny 2 characters' power levels from
the command line, sharing the sign-in and cache of the powerboard TUI.

It provides commands to show power status, manage the character display
order, sign in, and refresh the game-data manifest.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logger, err = logging.NewStderr(verbose)
		if err != nil {
			return err
		}

		store, err = sqlite.Open(cfg.DataDir)
		if err != nil {
			return err
		}

		client := bungie.NewClient(cfg.APIKey, bungie.WithClientLogger(logger))
		gateway = bungie.NewGateway(client, cfg.OAuthClientID, store, store, browser.NewOpener(), logger)
		manifest = bungie.NewManifestService(client, store, logger)
		source = bungie.NewCharacterSource(client, gateway, manifest, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// fetchSet signs in from the stored token and pulls a fresh snapshot set.
func fetchSet(ctx context.Context) (domain.SnapshotSet, error) {
	authed, err := gateway.Auth(ctx)
	if err != nil {
		return nil, err
	}
	if !authed {
		return nil, fmt.Errorf("not signed in: run 'powerboard-cli login' first")
	}

	var set domain.SnapshotSet
	err = source.GetCharacterData(ctx,
		func(s domain.SnapshotSet) { set = s },
		func(bool) {})
	if err != nil {
		return nil, err
	}
	return set, nil
}
