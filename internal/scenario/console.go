package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/serialcon"
)

const (
	// DefaultLineTimeout is how long one Expect call waits for the next
	// console line before capture stops.
	DefaultLineTimeout = 5 * time.Second
	// DefaultCaptureDeadline bounds the whole observation phase
	// regardless of how chatty the board is.
	DefaultCaptureDeadline = 60 * time.Second
)

// Console output is \r\n-terminated text; anything up to the terminator is
// one line.
var lineRe = regexp.MustCompile(`[^\r\n]*\r?\n`)

// ConsoleScenario is the reusable one-shot test behavior: erase the board,
// flash the kernel, install the scenario's apps, then capture console lines
// until output stops and hand them to the analysis predicate. Concrete
// scenarios supply only the app list and the predicate.
type ConsoleScenario struct {
	name    string
	apps    []string
	analyze func(lines []string) error

	// LineTimeout and CaptureDeadline default when zero.
	LineTimeout     time.Duration
	CaptureDeadline time.Duration

	lines []string
}

// NewConsole builds a one-shot console scenario. The analyze predicate must
// report rejection through Failf (or another *Failure), never a boolean, so
// that a nil return from Run always means pass.
func NewConsole(name string, apps []string, analyze func(lines []string) error) *ConsoleScenario {
	return &ConsoleScenario{name: name, apps: apps, analyze: analyze}
}

func (s *ConsoleScenario) Name() string   { return s.name }
func (s *ConsoleScenario) Apps() []string { return append([]string(nil), s.apps...) }

// Lines returns the console lines captured by the most recent Run.
func (s *ConsoleScenario) Lines() []string { return append([]string(nil), s.lines...) }

// Run executes the one-shot sequence. Steps run strictly in order; the
// first failing step aborts the run.
func (s *ConsoleScenario) Run(ctx context.Context, b board.Board) error {
	if err := b.Erase(ctx); err != nil {
		return err
	}

	tr, err := b.Serial()
	if err != nil {
		return fmt.Errorf("open console: %w", err)
	}
	tr.Flush()

	if err := b.FlashKernel(ctx); err != nil {
		return err
	}

	for _, app := range s.apps {
		if err := b.FlashApp(ctx, app); err != nil {
			return err
		}
	}

	var deadlineExceeded bool
	s.lines, deadlineExceeded = s.capture(ctx, tr)
	if deadlineExceeded {
		// A board still streaming at the deadline never counts as a
		// pass, whatever the lines so far would analyze to.
		return Failf("console still streaming when the %s capture deadline expired (%d lines captured)",
			s.captureDeadline(), len(s.lines))
	}

	slog.Info("analyzing console output", "test", s.name, "lines", len(s.lines))
	return s.analyze(s.lines)
}

func (s *ConsoleScenario) lineTimeout() time.Duration {
	if s.LineTimeout != 0 {
		return s.LineTimeout
	}
	return DefaultLineTimeout
}

func (s *ConsoleScenario) captureDeadline() time.Duration {
	if s.CaptureDeadline != 0 {
		return s.CaptureDeadline
	}
	return DefaultCaptureDeadline
}

// capture reads \r\n-terminated lines until a per-line timeout (the board
// went quiet) or ctx cancellation. Undecodable bytes are replaced rather
// than dropped. The boolean reports that the overall deadline expired while
// the board was still producing output.
func (s *ConsoleScenario) capture(ctx context.Context, tr serialcon.Transport) ([]string, bool) {
	lineTimeout := s.lineTimeout()
	deadline := time.Now().Add(s.captureDeadline())

	var lines []string
	for ctx.Err() == nil {
		wait := lineTimeout
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		if wait <= 0 {
			slog.Warn("capture deadline reached", "test", s.name)
			return lines, true
		}

		data, ok := tr.Expect(lineRe, wait)
		if !ok {
			return lines, false
		}
		line := strings.TrimRight(strings.ToValidUTF8(string(data), "�"), "\r\n")
		slog.Info("console", "line", line)
		lines = append(lines, line)
	}
	return lines, false
}
