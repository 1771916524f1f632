// Package scenario defines test scenarios: the apps a test installs and the
// predicate that judges the board's console output. A scenario runs the full
// erase → flash kernel → install apps → observe → analyze sequence against
// any board implementation.
package scenario

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ember-os/hwci/internal/board"
)

// Scenario is one test case. Run returns nil on pass, a *Failure when the
// captured output rejects, and any other error when a harness step failed.
type Scenario interface {
	Name() string
	Apps() []string
	Run(ctx context.Context, b board.Board) error
}

// Factory constructs a fresh Scenario instance; scenarios keep no state
// between runs.
type Factory func() Scenario

var (
	registryMu sync.Mutex
	registry   = map[string]Factory{}
)

// Register makes a scenario selectable by name. Duplicate names panic.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("scenario: duplicate registration of %q", name))
	}
	registry[name] = f
}

// New constructs the named scenario.
func New(name string) (Scenario, error) {
	registryMu.Lock()
	f, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown test %q (known: %v)", name, Names())
	}
	return f(), nil
}

// Names lists the registered scenarios, sorted.
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
