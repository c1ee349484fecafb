package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the account-wide power summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := fetchSet(context.Background())
		if err != nil {
			return err
		}

		agg := set.Aggregates()
		fmt.Printf("Power    %d\n", agg.Overall)
		fmt.Printf("Artifact +%d\n", agg.Artifact)
		fmt.Printf("Total    %d\n", agg.Total)
		return nil
	},
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List characters with their power levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := fetchSet(context.Background())
		if err != nil {
			return err
		}

		for _, snap := range set {
			if snap.ArtifactBonus > 0 {
				fmt.Printf("%s  %-8s %d (+%d)\n", snap.ID, snap.Class, snap.Light, snap.ArtifactBonus)
			} else {
				fmt.Printf("%s  %-8s %d\n", snap.ID, snap.Class, snap.Light)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(charactersCmd)
}
