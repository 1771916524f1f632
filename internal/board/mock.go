package board

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/ember-os/hwci/internal/serialcon"
)

// MockBoard simulates a target so the harness itself can be exercised and
// tested without hardware. Lifecycle steps are recorded no-ops; installing
// an app schedules a background producer that writes realistic console
// output for that app into the mock transport after a short delay.
type MockBoard struct {
	port  *serialcon.MockPort
	delay time.Duration

	mu    sync.Mutex
	calls []string

	// emitMu keeps each app's output contiguous when several producers
	// run at once; real apps interleave whole lines, not bytes.
	emitMu sync.Mutex
}

// NewMockBoard returns a simulated board with its transport already open.
func NewMockBoard() *MockBoard {
	return &MockBoard{
		port:  serialcon.NewMockPort(),
		delay: 50 * time.Millisecond,
	}
}

func init() {
	Register("mock", func(Options) (Board, error) {
		return NewMockBoard(), nil
	})
}

func (m *MockBoard) Name() string              { return "mock" }
func (m *MockBoard) Arch() string              { return "none" }
func (m *MockBoard) BaudRate() int             { return 115200 }
func (m *MockBoard) UARTPort() (string, error) { return "mock", nil }

func (m *MockBoard) Serial() (serialcon.Transport, error) {
	return m.port, nil
}

// Calls returns the lifecycle operations invoked so far, in order.
func (m *MockBoard) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockBoard) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockBoard) Erase(ctx context.Context) error {
	m.record("erase")
	slog.Debug("mock erase")
	return nil
}

func (m *MockBoard) FlashKernel(ctx context.Context) error {
	m.record("flash-kernel")
	slog.Debug("mock flash kernel")
	return nil
}

// FlashApp starts the simulated output producer for the app. Output arrives
// asynchronously, the way a real board prints while the harness is still
// wrapping up the install step.
func (m *MockBoard) FlashApp(ctx context.Context, app string) error {
	m.record("flash-app:" + app)
	slog.Debug("mock install", "app", app)
	go m.emit(app)
	return nil
}

func (m *MockBoard) emit(app string) {
	time.Sleep(m.delay)
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	switch base := path.Base(app); base {
	case "c_hello":
		// Split mid-word: consumers must match across chunk boundaries.
		m.port.WriteString("Hello ")
		m.port.WriteString("World!\r\n")
	case "multi_alarm_simple":
		m.emitAlarms()
	case "adc":
		for i := 0; i < 3; i++ {
			m.port.WriteString(fmt.Sprintf("ADC Reading: %d\r\n", 500+i*7))
		}
	default:
		m.port.WriteString(fmt.Sprintf("%s: started\r\n", base))
	}
}

// emitAlarms fabricates a run where alarm 1 fires twice as often as
// alarm 2, timestamps non-decreasing per alarm.
func (m *MockBoard) emitAlarms() {
	tick := 1000
	for i := 0; i < 5; i++ {
		m.port.WriteString(fmt.Sprintf("1 %d %d\r\n", tick, tick+100))
		tick += 100
		m.port.WriteString(fmt.Sprintf("1 %d %d\r\n", tick, tick+100))
		tick += 100
		m.port.WriteString(fmt.Sprintf("2 %d %d\r\n", tick, tick+200))
		tick += 10
	}
}

func (m *MockBoard) Close() error {
	return m.port.Close()
}
