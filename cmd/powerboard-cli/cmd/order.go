package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"powerboard/internal/domain"
)

var orderCmd = &cobra.Command{
	Use:   "order [get|set|reset]",
	Short: "Manage the character display order",
	Long: `Manage the order characters appear in the powerboard TUI.

Examples:
  powerboard-cli order get
  powerboard-cli order set 2305843009301040123,2305843009301040456
  powerboard-cli order reset`,
}

var orderGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := fetchSet(context.Background())
		if err != nil {
			return err
		}

		saved, err := store.LoadDisplayOrder()
		if err != nil {
			return err
		}

		order := domain.DefaultOrder(set)
		custom := false
		if saved != nil && saved.Validate(set) {
			order = saved
			custom = true
		}

		if custom {
			fmt.Println("Custom order:")
		} else {
			fmt.Println("Default order (most recently played first):")
		}
		for i, id := range order {
			snap, found := set.ByID(id)
			if !found {
				continue
			}
			fmt.Printf("%d. %-8s %s\n", i+1, snap.Class, id)
		}
		return nil
	},
}

var orderSetCmd = &cobra.Command{
	Use:   "set <id,id,...>",
	Short: "Save a custom display order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var order domain.DisplayOrder
		for _, id := range strings.Split(args[0], ",") {
			if id = strings.TrimSpace(id); id != "" {
				order = append(order, id)
			}
		}

		set, err := fetchSet(context.Background())
		if err != nil {
			return err
		}
		if !order.Validate(set) {
			return fmt.Errorf("order must list every character ID exactly once, roster: %s",
				strings.Join(set.IDs(), ","))
		}

		if err := store.SaveDisplayOrder(order); err != nil {
			return err
		}
		fmt.Println("Display order saved.")
		return nil
	},
}

var orderResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Revert to most recently played order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ClearDisplayOrder(); err != nil {
			return err
		}
		fmt.Println("Display order reset.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderGetCmd)
	orderCmd.AddCommand(orderSetCmd)
	orderCmd.AddCommand(orderResetCmd)
}
