package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hwci",
	Short: "Hardware-in-the-loop CI harness for the Ember OS kernel",
	Long: `hwci drives a development board through a full test cycle: erase,
flash the kernel, install apps, capture the serial console, and judge the
output against the selected test's acceptance policy.

Boards and tests are selected by name from built-in registries; run
'hwci boards' and 'hwci tests' to list them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the CLI. All failures map to a non-zero process exit.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "hwci.yml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
