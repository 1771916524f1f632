package scenario

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-os/hwci/internal/board"
	"github.com/ember-os/hwci/internal/serialcon"
)

// quick trims the capture timeouts so mock runs finish fast.
func quick(s Scenario) *ConsoleScenario {
	cs := s.(*ConsoleScenario)
	cs.LineTimeout = 300 * time.Millisecond
	cs.CaptureDeadline = 5 * time.Second
	return cs
}

func TestHelloEndToEndOnMockBoard(t *testing.T) {
	b := board.NewMockBoard()
	sc, err := New("hello")
	require.NoError(t, err)

	start := time.Now()
	err = quick(sc).Run(context.Background(), b)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)

	require.NoError(t, b.Close())
}

func TestMultiAlarmEndToEndOnMockBoard(t *testing.T) {
	b := board.NewMockBoard()
	defer b.Close()

	sc, err := New("multi-alarm")
	require.NoError(t, err)
	require.NoError(t, quick(sc).Run(context.Background(), b))
}

func TestNoFaultsEndToEndOnMockBoard(t *testing.T) {
	b := board.NewMockBoard()
	defer b.Close()

	sc, err := New("no-faults")
	require.NoError(t, err)
	require.NoError(t, quick(sc).Run(context.Background(), b))
}

func TestConsoleScenarioLifecycleOrder(t *testing.T) {
	b := board.NewMockBoard()
	defer b.Close()

	sc, err := New("hello-printf")
	require.NoError(t, err)
	require.NoError(t, quick(sc).Run(context.Background(), b))

	assert.Equal(t, []string{
		"erase",
		"flash-kernel",
		"flash-app:examples/c_hello",
		"flash-app:tests/printf_long",
	}, b.Calls())
}

func TestConsoleScenarioCapturesLines(t *testing.T) {
	b := board.NewMockBoard()
	defer b.Close()

	sc, err := New("hello")
	require.NoError(t, err)
	cs := quick(sc)
	require.NoError(t, cs.Run(context.Background(), b))

	lines := cs.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines, "Hello World!")
}

func TestConsoleScenarioFailingAnalysis(t *testing.T) {
	b := board.NewMockBoard()
	defer b.Close()

	// Blink's banner never contains the hello text.
	cs := NewConsole("hello-vs-blink", []string{"examples/blink"}, analyzeHello)
	cs.LineTimeout = 300 * time.Millisecond

	err := cs.Run(context.Background(), b)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
}

// chatterBoard streams console lines forever once an app is installed, for
// exercising the overall capture deadline.
type chatterBoard struct {
	port      *serialcon.MockPort
	stop      chan struct{}
	closeOnce sync.Once
}

func newChatterBoard() *chatterBoard {
	return &chatterBoard{port: serialcon.NewMockPort(), stop: make(chan struct{})}
}

func (b *chatterBoard) Name() string                         { return "chatter" }
func (b *chatterBoard) Arch() string                         { return "mock" }
func (b *chatterBoard) UARTPort() (string, error)            { return "mock", nil }
func (b *chatterBoard) BaudRate() int                        { return 115200 }
func (b *chatterBoard) Serial() (serialcon.Transport, error) { return b.port, nil }
func (b *chatterBoard) Erase(context.Context) error          { return nil }
func (b *chatterBoard) FlashKernel(context.Context) error    { return nil }

func (b *chatterBoard) FlashApp(ctx context.Context, app string) error {
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-b.stop:
				return
			case <-ticker.C:
				b.port.WriteString("Hello World!\r\n")
			}
		}
	}()
	return nil
}

func (b *chatterBoard) Close() error {
	b.closeOnce.Do(func() { close(b.stop) })
	return b.port.Close()
}

func TestConsoleScenarioDeadlineWithEndlessOutputFails(t *testing.T) {
	b := newChatterBoard()
	defer b.Close()

	// Every captured line would satisfy the analysis; only the deadline
	// can stop the run, and that must not be scored as a pass.
	cs := NewConsole("hello-endless", []string{"examples/c_hello"}, analyzeHello)
	cs.LineTimeout = 200 * time.Millisecond
	cs.CaptureDeadline = 600 * time.Millisecond

	start := time.Now()
	err := cs.Run(context.Background(), b)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
	assert.Contains(t, err.Error(), "capture deadline")
	assert.NotEmpty(t, cs.Lines())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestUnknownScenario(t *testing.T) {
	_, err := New("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown test")
}

func TestRegistryListsScenarios(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "hello")
	assert.Contains(t, names, "multi-alarm")
	assert.Contains(t, names, "no-faults")
	assert.Contains(t, names, "adc")
}
