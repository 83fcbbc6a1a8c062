package core

import "time"

// RuntimeConfig is passed to simulations when they are (re)started.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Viewer ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameDuration returns the wall time between viewer ticks.
func (c RuntimeConfig) FrameDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// SimState summarizes a running simulation for the HUD.
type SimState struct {
	Tick      uint64        // Viewer ticks delivered
	Steps     uint64        // Fixed physics steps taken
	Elapsed   time.Duration // Simulated time
	Bodies    int           // Dynamic bodies in the world
	Statics   int           // Static bodies in the world
	Contacts  int           // Collider callbacks fired
	Paused    bool
	Debug     bool
	TimeScale float64
}

// StepResult is returned by Simulation.Step after each viewer tick.
type StepResult struct {
	State SimState
	Steps int // Physics steps run during this tick
}
