package serialcon

import (
	"io"
	"log/slog"
	"regexp"
	"sync"
	"time"
)

// MockPort is an in-memory Transport for exercising the harness without
// hardware. Write queues chunks exactly as a UART would deliver them;
// Expect consumes the queue with the same pattern/timeout semantics as the
// hardware port, so data split across any number of Write calls still
// matches once concatenated.
type MockPort struct {
	mu     sync.Mutex
	closed bool
	ch     chan []byte
	done   chan struct{}
	exp    expecter
}

// NewMockPort returns an open mock transport.
func NewMockPort() *MockPort {
	m := &MockPort{
		ch:   make(chan []byte, 256),
		done: make(chan struct{}),
	}
	m.exp = expecter{recv: m.ch, done: m.done}
	return m
}

// Write queues a chunk for later consumption by Expect. Writing to a closed
// mock returns io.ErrClosedPipe, matching the hardware port.
func (m *MockPort) Write(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return io.ErrClosedPipe
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	select {
	case m.ch <- chunk:
	default:
		slog.Warn("mock serial queue full, dropping chunk", "size", len(p))
	}
	return nil
}

// WriteString queues a string chunk.
func (m *MockPort) WriteString(s string) error {
	return m.Write([]byte(s))
}

// Expect blocks until pattern matches the queued data or timeout elapses.
func (m *MockPort) Expect(pattern *regexp.Regexp, timeout time.Duration) ([]byte, bool) {
	return m.exp.expect(pattern, timeout)
}

// Flush discards buffered bytes and any queued chunks.
func (m *MockPort) Flush() {
	m.exp.flush()
}

// Close marks the mock closed. Idempotent.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		slog.Debug("mock serial port already closed")
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}
