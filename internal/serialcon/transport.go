// Package serialcon provides the console transport used to observe a board
// under test: a hardware-backed UART port, an in-memory mock with the same
// behavior, and pattern matching with timeouts over the received byte stream.
package serialcon

import (
	"bytes"
	"regexp"
	"time"
)

// Transport is a line-oriented console connection to a board.
//
// Expect is the only blocking operation. It returns the accumulated bytes up
// to and including the first match of pattern, or (nil, false) if no match
// arrives within timeout. A timeout leaves the transport consistent: bytes
// received so far stay buffered for the next call. Transport-level failures
// (device unplugged, EOF) also surface as (nil, false) so callers have a
// single no-data signal to check.
type Transport interface {
	Expect(pattern *regexp.Regexp, timeout time.Duration) ([]byte, bool)
	Write(p []byte) error
	Flush()
	Close() error
}

// expecter accumulates received chunks and matches patterns against the
// accumulated bytes. It is consumed by a single reader at a time.
type expecter struct {
	recv <-chan []byte
	done <-chan struct{}
	buf  bytes.Buffer
}

func (e *expecter) expect(pattern *regexp.Regexp, timeout time.Duration) ([]byte, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if loc := pattern.FindIndex(e.buf.Bytes()); loc != nil {
			matched := make([]byte, loc[1])
			copy(matched, e.buf.Bytes()[:loc[1]])
			e.buf.Next(loc[1])
			return matched, true
		}

		select {
		case chunk := <-e.recv:
			e.buf.Write(chunk)
		case <-e.done:
			// The device side is gone, but chunks delivered before
			// shutdown may still be queued; drain them before
			// reporting no match.
			select {
			case chunk := <-e.recv:
				e.buf.Write(chunk)
			default:
				return nil, false
			}
		case <-timer.C:
			return nil, false
		}
	}
}

// flush discards buffered bytes and drains any chunks already queued.
func (e *expecter) flush() {
	e.buf.Reset()
	for {
		select {
		case <-e.recv:
		default:
			return
		}
	}
}
