// Package scene builds runnable physics worlds from scene configurations
// and registers the built-in scenes as simulations.
package scene

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/arcade-physics/internal/arcade"
	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/tilemap"
)

// Object is a sprite plus how to draw it.
type Object struct {
	Sprite *arcade.Sprite
	Glyph  rune
	Color  core.Color
}

// Alive reports whether the object still has a body.
func (o *Object) Alive() bool {
	return o.Sprite.Body() != nil
}

// Scene is a populated physics world.
type Scene struct {
	Config  config.SceneConfig
	Physics *arcade.Physics

	objects []*Object
	byName  map[string]*Object
	groups  map[string]*arcade.Group
	layers  []*tilemap.Layer
	byLayer map[string]*tilemap.Layer

	canvas   *DebugCanvas
	contacts map[string]int
	total    int
	steps    uint64
	clock    time.Duration
}

// Build creates the world described by cfg and populates it.
func Build(cfg config.SceneConfig, opts ...arcade.Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: build: %w", err)
	}

	canvas := &DebugCanvas{}
	p, err := arcade.NewPhysics(cfg.World, append([]arcade.Option{arcade.WithDebugGraphics(canvas)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.ID, err)
	}

	s := &Scene{
		Config:   cfg,
		Physics:  p,
		byName:   make(map[string]*Object),
		groups:   make(map[string]*arcade.Group),
		byLayer:  make(map[string]*tilemap.Layer),
		canvas:   canvas,
		contacts: make(map[string]int),
	}

	for _, sc := range cfg.Sprites {
		s.addObject(sc, sc.Static)
	}
	for _, gc := range cfg.Groups {
		s.addGroup(gc)
	}
	for _, tc := range cfg.Tilemaps {
		l := tilemap.FromRows(tc.Name, tc.Rows, tc.TileWidth, tc.TileHeight, tc.Solid)
		l.SetPosition(tc.X, tc.Y)
		s.layers = append(s.layers, l)
		s.byLayer[tc.Name] = l
	}
	for i, cc := range cfg.Collider {
		s.addCollider(i, cc)
	}

	p.World.Events().On(arcade.EventStep, func(any) { s.steps++ })
	return s, nil
}

func (s *Scene) addObject(sc config.SpriteConfig, static bool) *Object {
	w, h := sc.Width, sc.Height
	if sc.Circle > 0 && w == 0 && h == 0 {
		w, h = sc.Circle*2, sc.Circle*2
	}

	sp := arcade.NewSprite(sc.Name, sc.X, sc.Y, w, h)
	kind := arcade.Dynamic
	if static {
		kind = arcade.Static
	}
	applyBody(s.Physics.World.EnableBody(sp, kind), sc)

	obj := &Object{
		Sprite: sp,
		Glyph:  glyph(sc.Glyph, static),
		Color:  core.ParseColor(sc.Color),
	}
	s.objects = append(s.objects, obj)
	s.byName[sc.Name] = obj
	return obj
}

func (s *Scene) addGroup(gc config.GroupConfig) {
	var g *arcade.Group
	if gc.Static {
		g = s.Physics.AddStaticGroup(gc.Name)
	} else {
		g = s.Physics.AddGroup(gc.Name)
	}
	s.groups[gc.Name] = g

	for _, m := range gc.Members {
		g.Add(s.byName[m].Sprite)
	}

	if gc.Grid == nil {
		return
	}
	n := 0
	for row := range gc.Grid.Rows {
		for col := range gc.Grid.Cols {
			sc := gc.Grid.Template
			sc.Name = config.GridMemberName(gc.Name, n)
			sc.X += float64(col) * gc.Grid.Step.X
			sc.Y += float64(row) * gc.Grid.Step.Y
			g.Add(s.addObject(sc, gc.Static).Sprite)
			n++
		}
	}
}

func (s *Scene) addCollider(i int, cc config.ColliderConfig) {
	name := cc.Name
	if name == "" {
		name = fmt.Sprintf("collider-%d", i)
	}

	collide := func(pair arcade.Pair) {
		s.contacts[name]++
		s.total++
		if cc.Destroy && pair.Tile == nil && pair.B != nil {
			if d, ok := pair.B.Body().(interface{ Destroy() }); ok {
				d.Destroy()
			}
		}
	}

	w := s.Physics.World
	a, b := s.target(cc.A), s.target(cc.B)
	var c *arcade.Collider
	if cc.Overlap {
		c = w.AddOverlap(a, b, collide, nil)
	} else {
		c = w.AddCollider(a, b, collide, nil)
	}
	c.SetName(name)
}

// target resolves names to sprites, groups or tilemaps.
func (s *Scene) target(names config.Names) arcade.Target {
	var ts []arcade.Target
	for _, n := range names {
		switch {
		case s.byName[n] != nil:
			ts = append(ts, arcade.Obj(s.byName[n].Sprite))
		case s.groups[n] != nil:
			ts = append(ts, arcade.GroupTarget(s.groups[n]))
		case s.byLayer[n] != nil:
			ts = append(ts, arcade.LayerTarget(s.byLayer[n]))
		}
	}

	switch len(ts) {
	case 0:
		return arcade.Target{}
	case 1:
		return ts[0]
	default:
		return arcade.List(ts...)
	}
}

func applyBody(c arcade.Collidable, sc config.SpriteConfig) {
	switch b := c.(type) {
	case *arcade.Body:
		if sc.Circle > 0 {
			b.SetCircle(sc.Circle, 0, 0)
		}
		b.Velocity = sc.Velocity
		b.Acceleration = sc.Acceleration
		b.Drag = sc.Drag
		b.Bounce = sc.Bounce
		if sc.Mass > 0 {
			b.Mass = sc.Mass
		}
		b.Immovable = sc.Immovable
		if sc.AllowGravity != nil {
			b.AllowGravity = *sc.AllowGravity
		}
		b.CollideWorldBounds = sc.CollideWorldBounds
	case *arcade.StaticBody:
		if sc.Circle > 0 {
			b.SetCircle(sc.Circle, 0, 0)
		}
		b.Bounce = sc.Bounce
		if sc.Mass > 0 {
			b.Mass = sc.Mass
		}
	}
}

func glyph(s string, static bool) rune {
	if r, size := utf8.DecodeRuneInString(s); size > 0 {
		return r
	}
	if static {
		return '='
	}
	return '#'
}

// Object returns the named sprite, or nil.
func (s *Scene) Object(name string) *Object { return s.byName[name] }

// Objects returns every sprite in creation order.
func (s *Scene) Objects() []*Object { return s.objects }

// Group returns the named group, or nil.
func (s *Scene) Group(name string) *arcade.Group { return s.groups[name] }

// Layer returns the named tilemap layer, or nil.
func (s *Scene) Layer(name string) *tilemap.Layer { return s.byLayer[name] }

// Steps returns the number of fixed steps run so far.
func (s *Scene) Steps() uint64 { return s.steps }

// Contacts returns the number of collider callbacks fired so far.
func (s *Scene) Contacts() int { return s.total }

// ContactsFor returns the callbacks fired by the named collider.
func (s *Scene) ContactsFor(name string) int { return s.contacts[name] }

// FrameDuration returns the wall time of one fixed step.
func (s *Scene) FrameDuration() time.Duration {
	return time.Second / time.Duration(s.Physics.World.FPS())
}

// Advance feeds delta of wall time to the world and returns how many fixed
// steps ran.
func (s *Scene) Advance(delta time.Duration) int {
	before := s.steps
	s.clock += delta
	s.Physics.Update(s.clock, delta)
	return int(s.steps - before)
}

// Run advances the scene frame by frame until d of wall time has been fed.
func (s *Scene) Run(d time.Duration) int {
	frame := s.FrameDuration()
	steps := 0
	for range int(d / frame) {
		steps += s.Advance(frame)
	}
	return steps
}

// Close shuts the world down.
func (s *Scene) Close() {
	s.Physics.Shutdown()
}

// BodyState is the recorded state of one sprite.
type BodyState struct {
	Name   string
	X, Y   float64
	VX, VY float64
	Alive  bool
}

// Snapshot is the complete observable state of a scene.
type Snapshot struct {
	Steps    uint64
	Contacts int
	Bodies   []BodyState
}

// Snapshot records every sprite in creation order.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Steps:    s.steps,
		Contacts: s.total,
		Bodies:   make([]BodyState, 0, len(s.objects)),
	}
	for _, o := range s.objects {
		bs := BodyState{Name: o.Sprite.Name, X: o.Sprite.X, Y: o.Sprite.Y, Alive: o.Alive()}
		if b := o.Sprite.Dynamic(); b != nil {
			bs.VX, bs.VY = b.Velocity.X, b.Velocity.Y
		}
		snap.Bodies = append(snap.Bodies, bs)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism checks.
func (snap Snapshot) Hash() uint64 {
	h := snap.Steps
	h = h*31 + uint64(snap.Contacts) //#nosec G115 -- hash computation

	for _, b := range snap.Bodies {
		for _, r := range b.Name {
			h = h*31 + uint64(r) //#nosec G115 -- hash computation
		}
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
		if b.Alive {
			h = h*31 + 1
		} else {
			h *= 31
		}
	}
	return h
}

// Result summarizes a headless run.
type Result struct {
	SceneID  string
	Steps    uint64
	Contacts int
	Elapsed  time.Duration // Simulated time
	Wall     time.Duration // Wall time fed to the world
	Hash     uint64
}

// Simulate builds cfg and feeds it d of wall time. Feeding the returned
// Wall to Simulate again reproduces the run.
func Simulate(cfg config.SceneConfig, d time.Duration, opts ...arcade.Option) (Result, error) {
	s, err := Build(cfg, opts...)
	if err != nil {
		return Result{}, err
	}
	defer s.Close()

	s.Run(d)
	snap := s.Snapshot()
	return Result{
		SceneID:  cfg.ID,
		Steps:    snap.Steps,
		Contacts: snap.Contacts,
		Elapsed:  time.Duration(snap.Steps) * s.FrameDuration(),
		Wall:     s.clock,
		Hash:     snap.Hash(),
	}, nil
}
