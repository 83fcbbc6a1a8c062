// Package registry provides a global registry of simulation factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// ErrUnknown is returned by Create for ids that were never registered.
var ErrUnknown = errors.New("registry: unknown simulation")

// Simulation is a runnable physics scene driven by the platform.
// The platform handles input mapping, timing, and rendering.
type Simulation interface {
	// ID returns a unique identifier (e.g., "billiards").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds or rebuilds the scene's world.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one viewer tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current HUD summary.
	State() core.SimState
}

// Info contains metadata about a registered simulation.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a simulation.
type Factory func() Simulation

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry.
// Panics if a simulation with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered simulations, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new simulation by its ID.
func Create(id string) (Simulation, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}

	return f(), nil
}

// Exists checks if a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
