package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/scenario"
	"github.com/ember-os/hwci/internal/store"
)

// countingBoard wraps a mock board and counts Close calls.
type countingBoard struct {
	*board.MockBoard
	closeCalls int
}

func (c *countingBoard) Close() error {
	c.closeCalls++
	return c.MockBoard.Close()
}

type stubScenario struct {
	name string
	err  error
}

func (s *stubScenario) Name() string                           { return s.name }
func (s *stubScenario) Apps() []string                         { return nil }
func (s *stubScenario) Run(context.Context, board.Board) error { return s.err }

func TestRunClosesBoardExactlyOnceOnFailure(t *testing.T) {
	b := &countingBoard{MockBoard: board.NewMockBoard()}
	sc := &stubScenario{name: "always-fails", err: scenario.Failf("expected condition not met")}

	res := Run(context.Background(), b, sc, nil)

	assert.Equal(t, 1, b.closeCalls)
	assert.Equal(t, Failed, res.Outcome)
	assert.Contains(t, res.Reason, "expected condition not met")
}

func TestRunClosesBoardOnHarnessError(t *testing.T) {
	b := &countingBoard{MockBoard: board.NewMockBoard()}
	sc := &stubScenario{name: "broken-setup", err: assert.AnError}

	res := Run(context.Background(), b, sc, nil)

	assert.Equal(t, 1, b.closeCalls)
	assert.Equal(t, HarnessError, res.Outcome)
}

func TestRunPassedOutcome(t *testing.T) {
	b := &countingBoard{MockBoard: board.NewMockBoard()}
	sc := &stubScenario{name: "trivial"}

	res := Run(context.Background(), b, sc, nil)

	assert.Equal(t, Passed, res.Outcome)
	assert.Empty(t, res.Reason)
	assert.Equal(t, 1, b.closeCalls)
	assert.NotEmpty(t, res.RunID)
}

type panickyScenario struct{}

func (panickyScenario) Name() string   { return "panics" }
func (panickyScenario) Apps() []string { return nil }
func (panickyScenario) Run(context.Context, board.Board) error {
	panic("scenario blew up")
}

func TestRunClosesBoardWhenScenarioPanics(t *testing.T) {
	b := &countingBoard{MockBoard: board.NewMockBoard()}

	assert.Panics(t, func() { Run(context.Background(), b, panickyScenario{}, nil) })
	assert.Equal(t, 1, b.closeCalls, "transport leaked across a panicking scenario")
}

func TestRunEndToEndMockHello(t *testing.T) {
	b := board.NewMockBoard()
	sc, err := scenario.New("hello")
	require.NoError(t, err)
	cs := sc.(*scenario.ConsoleScenario)
	cs.LineTimeout = 300 * time.Millisecond

	st := store.New(t.TempDir())

	start := time.Now()
	res := Run(context.Background(), b, cs, st)
	require.Less(t, time.Since(start), 10*time.Second)

	assert.Equal(t, Passed, res.Outcome)

	runs, err := st.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "hello", runs[0].Test)
	assert.Equal(t, "passed", runs[0].Outcome)
	assert.NotEmpty(t, runs[0].LogFile)
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "harness-error", HarnessError.String())
}
