package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ember-os/hwci/internal/config"
	"github.com/ember-os/hwci/internal/report"
	"github.com/ember-os/hwci/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded test runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		runs, err := store.New(cfg.WorkDir).Runs()
		if err != nil {
			return err
		}
		fmt.Println(report.History(runs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
