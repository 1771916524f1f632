package board

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Runner executes an external tool and returns its combined output. A
// non-zero exit is an error; callers treat any error from Run as fatal to
// the current run.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// DefaultRunner executes tools on the host.
var DefaultRunner Runner = execRunner{}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			slog.Error("external tool failed",
				"cmd", name, "args", args, "dir", dir,
				"exit_code", exitErr.ExitCode(), "duration", duration)
			return string(output), fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
		}
		slog.Error("external tool could not run", "cmd", name, "err", err)
		return string(output), fmt.Errorf("%s: %w", name, err)
	}

	slog.Debug("external tool finished", "cmd", name, "args", args, "duration", duration)
	return string(output), nil
}
