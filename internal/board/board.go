// Package board abstracts the lifecycle of a target under test: UART
// discovery, erasing, flashing the kernel, and installing apps. Boards are
// selected by name from a registry populated at startup.
package board

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ember-os/hwci/internal/serialcon"
)

// Board is one physical or simulated target. A Board owns at most one serial
// transport, constructed on first use by Serial and released by Close.
type Board interface {
	Name() string
	Arch() string

	// UARTPort resolves the console device, either from an explicit
	// override or by scanning attached serial devices for the board's
	// USB signature. Returns serialcon.ErrNoDevice (wrapped) when no
	// device is discoverable.
	UARTPort() (string, error)
	BaudRate() int

	// Serial constructs the owned transport on first call and returns
	// the same instance thereafter.
	Serial() (serialcon.Transport, error)

	Erase(ctx context.Context) error
	FlashKernel(ctx context.Context) error
	FlashApp(ctx context.Context, app string) error

	// Close releases the owned transport. Idempotent.
	Close() error
}

// Options carries per-invocation settings shared by all board kinds.
type Options struct {
	SerialPort string // explicit UART device; skips discovery when set
	BaudRate   int    // override; 0 keeps the board default
	WorkDir    string // root for source checkouts and scratch files
	KernelRepo string
	AppsRepo   string
	Runner     Runner // nil selects the real command runner
}

func (o Options) runner() Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return DefaultRunner
}

// Factory constructs a fresh Board for one run.
type Factory func(Options) (Board, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Factory{}
)

// Register makes a board constructor selectable by name. Called from init
// functions; duplicate names panic.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("board: duplicate registration of %q", name))
	}
	registry[name] = f
}

// New constructs the named board.
func New(name string, opts Options) (Board, error) {
	registryMu.Lock()
	f, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown board %q (known: %v)", name, Names())
	}
	return f(opts)
}

// Names lists the registered boards, sorted.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
