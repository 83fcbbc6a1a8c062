// Package arcade implements a fixed-timestep arcade physics world: dynamic
// and static axis-aligned or circular bodies, an R-tree broad phase, body and
// tile separation, and a registry of colliders run every step.
package arcade

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/events"
	"github.com/vovakirdan/arcade-physics/internal/geom"
	"github.com/vovakirdan/arcade-physics/internal/rtree"
	"github.com/vovakirdan/arcade-physics/internal/structs"
)

// World owns every body and collider and advances them in fixed steps.
// It is not safe for concurrent use.
type World struct {
	Gravity        geom.Vec2
	Bounds         geom.Rect
	CheckCollision Faces

	OverlapBias float64
	TileBias    float64
	ForceX      bool
	UseTree     bool
	TimeScale   float64

	Debug config.DebugConfig

	fps       int
	frameTime float64       // Seconds per step
	frameDur  time.Duration // Wall time per step
	elapsed   time.Duration

	stepsLastFrame int
	isPaused       bool

	bodies         *structs.Set[*Body]
	staticBodies   *structs.Set[*StaticBody]
	pendingDestroy *structs.Set[Collidable]
	colliders      *structs.ProcessQueue[*Collider]

	tree       *rtree.Tree[*Body]
	staticTree *rtree.Tree[*StaticBody]

	events        *events.Emitter
	logger        *log.Logger
	debugGraphics DebugGraphics
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for lifecycle and catch-up messages.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithEmitter makes the world publish its events on e.
func WithEmitter(e *events.Emitter) Option {
	return func(w *World) {
		if e != nil {
			w.events = e
		}
	}
}

// WithDebugGraphics attaches a debug renderer.
func WithDebugGraphics(g DebugGraphics) Option {
	return func(w *World) {
		w.debugGraphics = g
	}
}

// NewWorld creates a world from validated options.
func NewWorld(cfg config.WorldConfig, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arcade: new world: %w", err)
	}

	w := &World{
		Gravity:     cfg.Gravity,
		Bounds:      cfg.Bounds,
		OverlapBias: cfg.OverlapBias,
		TileBias:    cfg.TileBias,
		ForceX:      cfg.ForceX,
		UseTree:     cfg.UseTree,
		TimeScale:   cfg.TimeScale,
		Debug:       cfg.Debug,
		isPaused:    cfg.Paused,

		bodies:         structs.NewSet[*Body](),
		staticBodies:   structs.NewSet[*StaticBody](),
		pendingDestroy: structs.NewSet[Collidable](),
		colliders:      structs.NewProcessQueue[*Collider](),

		tree:       rtree.New(cfg.MaxEntries, treeBounds[*Body]),
		staticTree: rtree.New(cfg.MaxEntries, treeBounds[*StaticBody]),

		events: events.NewEmitter(),
		logger: log.Default().WithPrefix("arcade"),
	}
	w.SetBoundsCollision(cfg.CheckCollision.Left, cfg.CheckCollision.Right,
		cfg.CheckCollision.Up, cfg.CheckCollision.Down)
	w.setFPS(cfg.FPS)

	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) setFPS(fps int) {
	w.fps = fps
	w.frameTime = 1 / float64(fps)
	w.frameDur = time.Second / time.Duration(fps)
}

// SetFPS changes the step rate.
func (w *World) SetFPS(fps int) error {
	if fps <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFPS, fps)
	}
	w.setFPS(fps)
	return nil
}

// FPS returns the step rate.
func (w *World) FPS() int { return w.fps }

// FrameTime returns the simulated seconds per step.
func (w *World) FrameTime() float64 { return w.frameTime }

// StepsLastFrame returns how many steps the last Update ran.
func (w *World) StepsLastFrame() int { return w.stepsLastFrame }

// IsPaused reports whether Update is suspended.
func (w *World) IsPaused() bool { return w.isPaused }

// Events returns the world's emitter.
func (w *World) Events() *events.Emitter { return w.events }

// SetDebugGraphics attaches or detaches the debug renderer.
func (w *World) SetDebugGraphics(g DebugGraphics) { w.debugGraphics = g }

func (w *World) emit(topic events.Topic, payload any) {
	w.events.Emit(topic, payload)
}

// Update advances the world by delta of wall time, running one Step per
// whole step slice accumulated so far. Nothing happens while paused or when
// there are no dynamic bodies.
func (w *World) Update(now, delta time.Duration) {
	if w.isPaused || w.bodies.Len() == 0 {
		return
	}

	slice := time.Duration(float64(w.frameDur) * w.TimeScale)
	if slice <= 0 {
		return
	}

	w.elapsed += delta
	count := 0
	for w.elapsed >= slice {
		w.elapsed -= slice
		w.Step(w.frameTime)
		count++
	}
	w.stepsLastFrame = count

	if count > maxCatchUpSteps {
		w.logger.Warn("simulation falling behind", "steps", count, "at", now)
	}
}

// Step runs a single fixed step of delta seconds.
func (w *World) Step(delta float64) {
	bodies := w.bodies.Snapshot()

	for _, b := range bodies {
		if b.Enable {
			b.update(delta)
		}
	}

	if w.UseTree {
		w.tree.Clear()
		w.tree.Load(bodies)
	}

	for _, c := range w.colliders.Update() {
		if c.active {
			c.Update()
		}
	}

	for _, b := range bodies {
		if b.Enable {
			b.postUpdate()
		}
	}

	w.emit(EventStep, delta)
}

// PostUpdate draws debug output and releases destroyed bodies.
func (w *World) PostUpdate() {
	w.drawDebug()

	pending := w.pendingDestroy.Snapshot()
	if len(pending) == 0 {
		return
	}
	for _, c := range pending {
		w.Remove(c)
		s := c.state()
		if obj := s.gameObject; obj != nil && obj.Body() == c {
			obj.SetBody(nil)
		}
		s.world = nil
		s.gameObject = nil
	}
	w.pendingDestroy.Clear()
	w.logger.Debug("destroyed bodies", "count", len(pending))
}

// Enable creates or re-enables a body of the given type on every object in
// target. Groups use their own body type.
func (w *World) Enable(target Target, kind BodyType) {
	for _, item := range target.flatten() {
		switch item.kind {
		case targetObject:
			w.EnableBody(item.obj, kind)
		case targetGroup:
			for _, child := range item.group.Children() {
				w.EnableBody(child, item.group.kind)
			}
		}
	}
}

// EnableBody attaches a body of the given type to obj, creating it if obj has
// none, and adds it to the world.
func (w *World) EnableBody(obj GameObject, kind BodyType) Collidable {
	body := obj.Body()
	if body == nil || body.state().world != w {
		switch kind {
		case Static:
			body = newStaticBody(w, obj)
		default:
			body = newBody(w, obj)
		}
		obj.SetBody(body)
	}
	w.Add(body)
	return body
}

// Add registers an existing body and enables it.
func (w *World) Add(c Collidable) Collidable {
	switch b := c.(type) {
	case *Body:
		w.bodies.Add(b)
	case *StaticBody:
		if w.staticBodies.Add(b) {
			w.staticTree.Insert(b)
		}
	}
	c.state().Enable = true
	w.logger.Debug("body enabled", "type", c.Type(), "object", c.GameObject())
	return c
}

// Disable removes the bodies of every object in target from the simulation.
func (w *World) Disable(target Target) {
	for _, obj := range target.objects() {
		if body := obj.Body(); body != nil {
			w.DisableBody(body)
		}
	}
}

// DisableBody removes c from the simulation and clears its Enable flag.
func (w *World) DisableBody(c Collidable) {
	w.Remove(c)
	c.state().Enable = false
	w.logger.Debug("body disabled", "type", c.Type(), "object", c.GameObject())
}

// Remove drops c from its set and spatial index.
func (w *World) Remove(c Collidable) {
	switch b := c.(type) {
	case *Body:
		w.tree.Remove(b)
		w.bodies.Delete(b)
	case *StaticBody:
		w.staticBodies.Delete(b)
		w.staticTree.Remove(b)
	}
}

// AddCollider registers a collider that separates a from b every step. It
// takes effect at the start of the next step.
func (w *World) AddCollider(a, b Target, collide CollideFunc, process ProcessFunc) *Collider {
	return w.addCollider(a, b, collide, process, false)
}

// AddOverlap registers a collider that only reports overlaps.
func (w *World) AddOverlap(a, b Target, collide CollideFunc, process ProcessFunc) *Collider {
	return w.addCollider(a, b, collide, process, true)
}

func (w *World) addCollider(a, b Target, collide CollideFunc, process ProcessFunc, overlapOnly bool) *Collider {
	c := &Collider{
		world:       w,
		active:      true,
		overlapOnly: overlapOnly,
		object1:     a,
		object2:     b,
		collide:     collide,
		process:     process,
	}
	w.colliders.Add(c)
	w.logger.Debug("collider added", "overlap", overlapOnly)
	return c
}

// RemoveCollider unregisters c at the start of the next step.
func (w *World) RemoveCollider(c *Collider) {
	w.colliders.Remove(c)
	w.logger.Debug("collider removed", "name", c.name)
}

// Colliders returns the colliders that ran in the last step.
func (w *World) Colliders() []*Collider {
	return w.colliders.Active()
}

// Collide separates a from b immediately and reports whether any pair
// collided.
func (w *World) Collide(a, b Target, collide CollideFunc, process ProcessFunc) bool {
	return w.collideObjects(a, b, collide, process, false)
}

// Overlap reports whether any pair of a and b overlaps, without separating
// them.
func (w *World) Overlap(a, b Target, collide CollideFunc, process ProcessFunc) bool {
	return w.collideObjects(a, b, collide, process, true)
}

// SetBounds sets the world bounds and which edges collide.
func (w *World) SetBounds(x, y, width, height float64, left, right, up, down bool) {
	w.Bounds = geom.NewRect(x, y, width, height)
	w.SetBoundsCollision(left, right, up, down)
}

// SetBoundsCollision selects which world edges bodies collide with.
func (w *World) SetBoundsCollision(left, right, up, down bool) {
	w.CheckCollision = Faces{
		Left:  left,
		Right: right,
		Up:    up,
		Down:  down,
	}
	w.CheckCollision.None = !w.CheckCollision.Any()
}

// Pause suspends Update and emits EventPause.
func (w *World) Pause() {
	w.isPaused = true
	w.emit(EventPause, nil)
	w.logger.Debug("paused")
}

// Resume restarts Update and emits EventResume.
func (w *World) Resume() {
	w.isPaused = false
	w.emit(EventResume, nil)
	w.logger.Debug("resumed")
}

// Wrap moves every object in target that left the bounds (grown by padding)
// to the opposite edge.
func (w *World) Wrap(target Target, padding float64) {
	left := w.Bounds.Left() - padding
	right := w.Bounds.Right() + padding
	top := w.Bounds.Top() - padding
	bottom := w.Bounds.Bottom() + padding

	for _, obj := range target.objects() {
		x, y := obj.Position()
		obj.SetPosition(geom.Wrap(x, left, right), geom.Wrap(y, top, bottom))
	}
}

// Bodies returns the dynamic bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies.Snapshot()
}

// StaticBodies returns the static bodies in insertion order.
func (w *World) StaticBodies() []*StaticBody {
	return w.staticBodies.Snapshot()
}

// SearchDynamic returns the dynamic bodies indexed at the last step whose
// bounds intersect r.
func (w *World) SearchDynamic(r geom.Rect) []*Body {
	return w.tree.Search(rectBBox(r))
}

// SearchStatic returns the static bodies whose bounds intersect r.
func (w *World) SearchStatic(r geom.Rect) []*StaticBody {
	return w.staticTree.Search(rectBBox(r))
}

// Shutdown releases every body, collider and listener.
func (w *World) Shutdown() {
	w.tree.Clear()
	w.staticTree.Clear()
	w.bodies.Clear()
	w.staticBodies.Clear()
	w.pendingDestroy.Clear()
	w.colliders.Clear()
	w.events.RemoveAll()
	w.debugGraphics = nil
	w.logger.Debug("shutdown")
}

func rectBBox(r geom.Rect) rtree.BBox {
	return rtree.BBox{MinX: r.Left(), MinY: r.Top(), MaxX: r.Right(), MaxY: r.Bottom()}
}
