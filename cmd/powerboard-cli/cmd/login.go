package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Bungie.net through the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Opening Bungie.net sign-in in your browser...")
		if err := gateway.ManualStartAuth(); err != nil {
			return err
		}

		if m, ok := gateway.SelectedMembership(); ok {
			fmt.Printf("Signed in as %s\n", m.DisplayName)
		} else {
			fmt.Println("Signed in.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
