package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/scenario"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the boards this harness can drive",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range board.Names() {
			fmt.Println(name)
		}
	},
}

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List the available tests and the apps they install",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range scenario.Names() {
			sc, err := scenario.New(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %v\n", name, sc.Apps())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(testsCmd)
}
