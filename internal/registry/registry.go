// Package registry maps game IDs to factories. The pizza package registers
// itself from init(), so the CLI and the SSH server build sessions by ID
// without importing simulation internals.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/pizza-time/internal/core"
)

// Game is what the terminal front end drives: a fixed-tick simulation
// that draws itself into a core.Screen and knows nothing about terminals.
type Game interface {
	// ID is the stable name used on the command line and in the run log.
	ID() string

	// Title is shown in the help footer and by `pizzatime list`.
	Title() string

	// Reset prepares a fresh session for the given screen, tick rate and seed.
	// Restarts after game over happen inside Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions held this frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory builds a new, un-Reset game.
type Factory func() Game

type entry struct {
	title string
	build Factory
}

var (
	mu    sync.RWMutex
	games = map[string]entry{}
)

// Register adds a game under id. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{title: f().Title(), build: f}
}

// Create builds a new game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := games[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.build(), nil
}

// IDs returns the registered ids in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(games))
}

// Title returns the display title for id, or "" if it is not registered.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	return games[id].title
}
