// Package harness is the top-level driver: it wires a board to a scenario,
// executes the run, classifies the result, and guarantees the board's serial
// transport is released whatever happens.
package harness

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/scenario"
	"github.com/ember-os/hwci/internal/store"
)

// Outcome is the tri-state result of a run.
type Outcome int

const (
	// Passed: the scenario ran to completion and its analysis accepted.
	Passed Outcome = iota
	// Failed: the board ran but its output did not meet the scenario's
	// acceptance policy.
	Failed
	// HarnessError: a setup or teardown step failed (board unreachable,
	// tool non-zero exit, missing artifact); the output was never judged.
	HarnessError
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "harness-error"
	}
}

// Result describes one completed run.
type Result struct {
	RunID    string
	Board    string
	Test     string
	Outcome  Outcome
	Reason   string
	Duration time.Duration
}

// consoleLines is implemented by scenarios that capture console output.
type consoleLines interface {
	Lines() []string
}

// Run executes one scenario against one board. The board's transport is
// closed exactly once regardless of outcome. When st is non-nil the run is
// appended to the history together with its console log.
func Run(ctx context.Context, b board.Board, sc scenario.Scenario, st *store.Store) Result {
	res := Result{
		RunID: uuid.NewString(),
		Board: b.Name(),
		Test:  sc.Name(),
	}

	// Release the transport even if the scenario path panics. A release
	// error is never escalated over the run's own result.
	defer func() {
		if closeErr := b.Close(); closeErr != nil {
			slog.Warn("closing board transport failed", "err", closeErr)
		}
	}()

	slog.Info("starting run", "run_id", res.RunID, "board", res.Board, "test", res.Test)
	start := time.Now()
	err := sc.Run(ctx, b)
	res.Duration = time.Since(start)

	switch {
	case err == nil:
		res.Outcome = Passed
	case scenario.IsFailure(err):
		res.Outcome = Failed
		res.Reason = err.Error()
	default:
		res.Outcome = HarnessError
		res.Reason = err.Error()
	}

	if st != nil {
		record(st, res, sc)
	}

	slog.Info("verdict",
		"run_id", res.RunID, "board", res.Board, "test", res.Test,
		"outcome", res.Outcome.String(), "duration", res.Duration)
	return res
}

func record(st *store.Store, res Result, sc scenario.Scenario) {
	rec := store.RunRecord{
		ID:        res.RunID,
		Board:     res.Board,
		Test:      res.Test,
		Outcome:   res.Outcome.String(),
		Reason:    res.Reason,
		Timestamp: time.Now(),
		Duration:  res.Duration.Round(time.Millisecond).String(),
	}

	if cl, ok := sc.(consoleLines); ok {
		if lines := cl.Lines(); len(lines) > 0 {
			path, err := st.WriteConsoleLog(res.RunID, lines)
			if err != nil {
				slog.Warn("could not write console log", "err", err)
			} else {
				rec.LogFile = path
			}
		}
	}

	if err := st.AddRun(rec); err != nil {
		slog.Warn("could not record run", "err", err)
	}
}
