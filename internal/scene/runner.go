package scene

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-physics/internal/arcade"
	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/registry"
)

// Time scale limits for the viewer's speed controls. A larger time scale
// slows the simulation down.
const (
	minTimeScale = 0.125
	maxTimeScale = 8
)

func init() {
	for _, id := range config.BuiltinScenes() {
		cfg, err := config.BuiltinScene(id)
		if err != nil {
			panic(fmt.Sprintf("scene: builtin %q: %v", id, err))
		}
		registry.Register(id, func() registry.Simulation {
			return NewRunner(cfg, nil)
		})
	}
}

// Runner drives a scene from the viewer: it feeds wall time to the world,
// applies viewer actions and draws the frame with a HUD line.
type Runner struct {
	cfg    config.SceneConfig
	rt     core.RuntimeConfig
	logger *log.Logger
	scene  *Scene
	tick   uint64
}

// Ensure Runner implements registry.Simulation
var _ registry.Simulation = (*Runner)(nil)

// NewRunner creates a runner for cfg. The world is built on Reset.
func NewRunner(cfg config.SceneConfig, logger *log.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger, rt: core.DefaultConfig()}
}

// ID returns the scene id.
func (r *Runner) ID() string { return r.cfg.ID }

// Title returns the scene title, falling back to its id.
func (r *Runner) Title() string {
	if r.cfg.Title == "" {
		return r.cfg.ID
	}
	return r.cfg.Title
}

// Scene returns the current scene, or nil before Reset.
func (r *Runner) Scene() *Scene { return r.scene }

// Reset rebuilds the world from the scene configuration.
func (r *Runner) Reset(rt core.RuntimeConfig) error {
	s, err := Build(r.cfg, arcade.WithLogger(r.logger))
	if err != nil {
		return err
	}
	if r.scene != nil {
		r.scene.Close()
	}
	r.scene = s
	r.rt = rt
	r.tick = 0
	return nil
}

// Step applies the frame's actions and advances the world by one viewer
// tick of wall time.
func (r *Runner) Step(in core.InputFrame) core.StepResult {
	if r.scene == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) {
		if err := r.Reset(r.rt); err != nil && r.logger != nil {
			r.logger.Error("restart failed", "scene", r.cfg.ID, "error", err)
		}
	}

	w := r.scene.Physics.World
	if in.Has(core.ActionPause) {
		if w.IsPaused() {
			w.Resume()
		} else {
			w.Pause()
		}
	}
	if in.Has(core.ActionDebug) {
		w.Debug.Enabled = !w.Debug.Enabled
	}
	if in.Has(core.ActionFaster) {
		w.TimeScale = max(minTimeScale, w.TimeScale/2)
	}
	if in.Has(core.ActionSlower) {
		w.TimeScale = min(maxTimeScale, w.TimeScale*2)
	}

	var steps int
	if in.Has(core.ActionStep) && w.IsPaused() {
		before := r.scene.Steps()
		w.Step(w.FrameTime())
		w.PostUpdate()
		steps = int(r.scene.Steps() - before)
	} else {
		steps = r.scene.Advance(r.rt.FrameDuration())
	}

	r.tick++
	return core.StepResult{State: r.State(), Steps: steps}
}

// State returns the HUD summary.
func (r *Runner) State() core.SimState {
	if r.scene == nil {
		return core.SimState{}
	}
	w := r.scene.Physics.World
	return core.SimState{
		Tick:      r.tick,
		Steps:     r.scene.Steps(),
		Elapsed:   time.Duration(r.scene.Steps()) * r.scene.FrameDuration(),
		Bodies:    len(w.Bodies()),
		Statics:   len(w.StaticBodies()),
		Contacts:  r.scene.Contacts(),
		Paused:    w.IsPaused(),
		Debug:     w.Debug.Enabled,
		TimeScale: w.TimeScale,
	}
}

// Render draws the HUD on the first row and the world below it.
func (r *Runner) Render(dst *core.Screen) {
	dst.Clear()
	if r.scene == nil {
		return
	}

	st := r.State()
	hud := fmt.Sprintf("%s  t=%.2fs  steps=%d  bodies=%d/%d  contacts=%d  scale=%g",
		r.Title(), st.Elapsed.Seconds(), st.Steps, st.Bodies, st.Statics, st.Contacts, st.TimeScale)
	if st.Paused {
		hud += "  [paused]"
	}
	if st.Debug {
		hud += "  [debug]"
	}
	dst.DrawText(0, 0, hud, core.ColorBrightWhite)

	r.scene.Render(dst, 1)
}
