package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/config"
	"github.com/ember-os/hwci/internal/harness"
	"github.com/ember-os/hwci/internal/report"
	"github.com/ember-os/hwci/internal/scenario"
	"github.com/ember-os/hwci/internal/store"
)

var (
	runBoard string
	runTest  string
	runPort  string
	runBaud  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one test against one board",
	Long: `Run executes the full cycle against the selected board: erase, flash
the kernel, install the test's apps, capture console output, analyze.

Exit code 0 means the test passed; 1 covers both a failing test and a
harness error (unreachable board, failed external tool).`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runBoard, "board", "", "board to test (see 'hwci boards')")
	runCmd.Flags().StringVar(&runTest, "test", "", "test to run (see 'hwci tests')")
	runCmd.Flags().StringVar(&runPort, "port", "", "serial device override (skips discovery)")
	runCmd.Flags().IntVar(&runBaud, "baud", 0, "baud rate override")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if runBoard != "" {
		cfg.Board = runBoard
	}
	if runTest != "" {
		cfg.Test = runTest
	}
	if runPort != "" {
		cfg.SerialPort = runPort
	}
	if runBaud != 0 {
		cfg.BaudRate = runBaud
	}

	if cfg.Board == "" {
		return fmt.Errorf("no board selected: pass --board or set it in %s", cfgFile)
	}
	if cfg.Test == "" {
		return fmt.Errorf("no test selected: pass --test or set it in %s", cfgFile)
	}

	b, err := board.New(cfg.Board, board.Options{
		SerialPort: cfg.SerialPort,
		BaudRate:   cfg.BaudRate,
		WorkDir:    cfg.WorkDir,
		KernelRepo: cfg.KernelRepo,
		AppsRepo:   cfg.AppsRepo,
	})
	if err != nil {
		return err
	}

	sc, err := scenario.New(cfg.Test)
	if err != nil {
		b.Close()
		return err
	}
	if cs, ok := sc.(*scenario.ConsoleScenario); ok {
		cs.LineTimeout = time.Duration(cfg.LineTimeoutSec) * time.Second
		cs.CaptureDeadline = time.Duration(cfg.CaptureDeadlineSec) * time.Second
	}

	st := store.New(cfg.WorkDir)
	res := harness.Run(cmd.Context(), b, sc, st)

	fmt.Println(report.Verdict(res))
	if res.Outcome != harness.Passed {
		return fmt.Errorf("%s: %s", res.Outcome, res.Reason)
	}
	return nil
}
