package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Show the game-data manifest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.GetManifest(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(m.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
