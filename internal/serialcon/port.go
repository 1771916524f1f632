package serialcon

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Port is a Transport backed by a physical serial device.
type Port struct {
	name string
	baud int
	port serial.Port

	mu        sync.Mutex
	open      bool
	done      chan struct{}
	closeOnce sync.Once

	exp expecter
}

// Open opens the named device at the given baud rate (8N1). The returned
// Port starts reading immediately; received bytes are buffered until
// consumed by Expect.
func Open(device string, baud int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	sp, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s @ %d: %w", device, baud, err)
	}

	dataCh := make(chan []byte, 64)
	p := &Port{
		name: device,
		baud: baud,
		port: sp,
		open: true,
		done: make(chan struct{}),
	}
	p.exp = expecter{recv: dataCh, done: p.done}

	go p.readLoop(dataCh)
	return p, nil
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string { return p.name }

func (p *Port) readLoop(dataCh chan<- []byte) {
	buf := make([]byte, 1024)
	for {
		n, err := p.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case dataCh <- chunk:
			case <-p.done:
				return
			}
		}
		if err != nil {
			p.mu.Lock()
			stillOpen := p.open
			p.mu.Unlock()
			if stillOpen {
				slog.Warn("serial read failed, treating as EOF", "device", p.name, "err", err)
			}
			p.closeOnce.Do(func() { close(p.done) })
			return
		}
	}
}

// Expect blocks until pattern matches the accumulated stream or timeout
// elapses. See Transport.
func (p *Port) Expect(pattern *regexp.Regexp, timeout time.Duration) ([]byte, bool) {
	return p.exp.expect(pattern, timeout)
}

// Write sends raw bytes to the device.
func (p *Port) Write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return io.ErrClosedPipe
	}
	_, err := p.port.Write(data)
	return err
}

// Flush discards any buffered unread bytes. Safe to call repeatedly.
func (p *Port) Flush() {
	p.exp.flush()
}

// Close releases the device. Idempotent: a second close is logged at debug
// and returns nil.
func (p *Port) Close() error {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		slog.Debug("serial port already closed", "device", p.name)
		return nil
	}
	p.open = false
	p.mu.Unlock()

	p.closeOnce.Do(func() { close(p.done) })
	if err := p.port.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.name, err)
	}
	return nil
}
