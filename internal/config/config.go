// Package config provides YAML-based world and scene configuration for the
// physics simulator.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// ErrInvalid is wrapped by every validation error returned from this package.
var ErrInvalid = errors.New("invalid config")

// BoundsCheck selects which world edges bodies collide with.
type BoundsCheck struct {
	Up    bool `yaml:"up"`
	Down  bool `yaml:"down"`
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
}

// WorldConfig holds the construction options of a physics world.
type WorldConfig struct {
	FPS            int         `yaml:"fps"`
	TimeScale      float64     `yaml:"time_scale"`
	Gravity        geom.Vec2   `yaml:"gravity"`
	Bounds         geom.Rect   `yaml:"bounds"`
	CheckCollision BoundsCheck `yaml:"check_collision"`
	OverlapBias    float64     `yaml:"overlap_bias"`
	TileBias       float64     `yaml:"tile_bias"`
	ForceX         bool        `yaml:"force_x"`
	Paused         bool        `yaml:"paused"`
	Debug          DebugConfig `yaml:"debug"`
	MaxEntries     int         `yaml:"max_entries"`
	UseTree        bool        `yaml:"use_tree"`
}

// DebugConfig toggles the debug drawing of bodies.
type DebugConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ShowBody        bool   `yaml:"show_body"`
	ShowStaticBody  bool   `yaml:"show_static_body"`
	ShowVelocity    bool   `yaml:"show_velocity"`
	BodyColor       uint32 `yaml:"body_color"`
	StaticBodyColor uint32 `yaml:"static_body_color"`
	VelocityColor   uint32 `yaml:"velocity_color"`
}

// Validate reports the first problem with the world options.
func (c WorldConfig) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("%w: time_scale must be positive, got %v", ErrInvalid, c.TimeScale)
	}
	if c.MaxEntries < 1 {
		return fmt.Errorf("%w: max_entries must be at least 1, got %d", ErrInvalid, c.MaxEntries)
	}
	if c.Bounds.Width < 0 || c.Bounds.Height < 0 {
		return fmt.Errorf("%w: bounds size must not be negative", ErrInvalid)
	}
	if c.OverlapBias < 0 || c.TileBias < 0 {
		return fmt.Errorf("%w: bias values must not be negative", ErrInvalid)
	}
	return nil
}

// SceneConfig describes a complete simulation: world options plus the
// objects, groups, tilemaps and colliders that populate it.
type SceneConfig struct {
	ID       string           `yaml:"id"`
	Title    string           `yaml:"title"`
	Seconds  float64          `yaml:"seconds"` // Default run length for headless simulation
	World    WorldConfig      `yaml:"world"`
	Sprites  []SpriteConfig   `yaml:"sprites"`
	Groups   []GroupConfig    `yaml:"groups"`
	Tilemaps []TilemapConfig  `yaml:"tilemaps"`
	Collider []ColliderConfig `yaml:"colliders"`
}

// SpriteConfig describes one physics-enabled object.
type SpriteConfig struct {
	Name               string    `yaml:"name"`
	X                  float64   `yaml:"x"`
	Y                  float64   `yaml:"y"`
	Width              float64   `yaml:"width"`
	Height             float64   `yaml:"height"`
	Static             bool      `yaml:"static"`
	Circle             float64   `yaml:"circle"` // Radius; 0 keeps a rectangle
	Velocity           geom.Vec2 `yaml:"velocity"`
	Acceleration       geom.Vec2 `yaml:"acceleration"`
	Drag               geom.Vec2 `yaml:"drag"`
	Bounce             geom.Vec2 `yaml:"bounce"`
	Mass               float64   `yaml:"mass"`
	Immovable          bool      `yaml:"immovable"`
	AllowGravity       *bool     `yaml:"allow_gravity"`
	CollideWorldBounds bool      `yaml:"collide_world_bounds"`
	Glyph              string    `yaml:"glyph"`
	Color              string    `yaml:"color"`
}

// GroupConfig describes a group of objects. Members may be listed by name,
// generated from a grid template, or both.
type GroupConfig struct {
	Name    string      `yaml:"name"`
	Static  bool        `yaml:"static"`
	Members []string    `yaml:"members"`
	Grid    *GridConfig `yaml:"grid"`
}

// GridConfig generates Cols x Rows copies of Template, spaced by Step.
type GridConfig struct {
	Cols     int          `yaml:"cols"`
	Rows     int          `yaml:"rows"`
	Step     geom.Vec2    `yaml:"step"`
	Template SpriteConfig `yaml:"template"`
}

// TilemapConfig describes a tile layer drawn as ASCII rows.
type TilemapConfig struct {
	Name       string   `yaml:"name"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	TileWidth  float64  `yaml:"tile_width"`
	TileHeight float64  `yaml:"tile_height"`
	Solid      string   `yaml:"solid"` // Characters that collide
	Rows       []string `yaml:"rows"`
}

// ColliderConfig registers a collider between named targets.
type ColliderConfig struct {
	A       Names  `yaml:"a"`
	B       Names  `yaml:"b"`
	Overlap bool   `yaml:"overlap"`
	Name    string `yaml:"name"`
	Destroy bool   `yaml:"destroy"` // Destroy the second object's body on contact
}

// Validate checks names, sizes and collider references.
func (s SceneConfig) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: scene id is required", ErrInvalid)
	}
	if err := s.World.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", s.ID, err)
	}

	names := make(map[string]bool)
	declare := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%w: scene %s: %s without a name", ErrInvalid, s.ID, kind)
		}
		if names[name] {
			return fmt.Errorf("%w: scene %s: duplicate name %q", ErrInvalid, s.ID, name)
		}
		names[name] = true
		return nil
	}

	for _, sp := range s.Sprites {
		if err := declare("sprite", sp.Name); err != nil {
			return err
		}
		if err := sp.validate(); err != nil {
			return fmt.Errorf("scene %s: sprite %s: %w", s.ID, sp.Name, err)
		}
	}
	for _, g := range s.Groups {
		if err := declare("group", g.Name); err != nil {
			return err
		}
		if g.Grid != nil {
			if g.Grid.Cols < 0 || g.Grid.Rows < 0 {
				return fmt.Errorf("%w: scene %s: group %s: negative grid size", ErrInvalid, s.ID, g.Name)
			}
			if g.Grid.Template.Static && !g.Static {
				return fmt.Errorf("%w: scene %s: group %s: static template in a dynamic group", ErrInvalid, s.ID, g.Name)
			}
			if err := g.Grid.Template.validate(); err != nil {
				return fmt.Errorf("scene %s: group %s template: %w", s.ID, g.Name, err)
			}
		}
	}
	// Grid members are named after their group; declare them once every
	// group name is known so clashes in either direction are caught.
	for _, g := range s.Groups {
		if g.Grid == nil {
			continue
		}
		for n := range g.Grid.Cols * g.Grid.Rows {
			if err := declare("grid member", GridMemberName(g.Name, n)); err != nil {
				return err
			}
		}
	}
	for _, tm := range s.Tilemaps {
		if err := declare("tilemap", tm.Name); err != nil {
			return err
		}
		if tm.TileWidth <= 0 || tm.TileHeight <= 0 {
			return fmt.Errorf("%w: scene %s: tilemap %s: tile size must be positive", ErrInvalid, s.ID, tm.Name)
		}
	}

	for _, g := range s.Groups {
		for _, m := range g.Members {
			sp, ok := s.sprite(m)
			if !ok {
				return fmt.Errorf("%w: scene %s: group %s: unknown sprite %q", ErrInvalid, s.ID, g.Name, m)
			}
			if sp.Static != g.Static {
				return fmt.Errorf("%w: scene %s: group %s: sprite %q is %s but the group is %s",
					ErrInvalid, s.ID, g.Name, m, staticWord(sp.Static), staticWord(g.Static))
			}
		}
	}
	for i, c := range s.Collider {
		if len(c.A) == 0 {
			return fmt.Errorf("%w: scene %s: collider %d has no first target", ErrInvalid, s.ID, i)
		}
		for _, n := range append(append(Names{}, c.A...), c.B...) {
			if !names[n] {
				return fmt.Errorf("%w: scene %s: collider %d: unknown target %q", ErrInvalid, s.ID, i, n)
			}
		}
	}
	return nil
}

func (s SceneConfig) sprite(name string) (SpriteConfig, bool) {
	for _, sp := range s.Sprites {
		if sp.Name == name {
			return sp, true
		}
	}
	return SpriteConfig{}, false
}

func staticWord(static bool) string {
	if static {
		return "static"
	}
	return "dynamic"
}

func (sp SpriteConfig) validate() error {
	if sp.Width < 0 || sp.Height < 0 {
		return fmt.Errorf("%w: size must not be negative", ErrInvalid)
	}
	if sp.Circle < 0 {
		return fmt.Errorf("%w: circle radius must not be negative", ErrInvalid)
	}
	if sp.Mass < 0 {
		return fmt.Errorf("%w: mass must not be negative", ErrInvalid)
	}
	return nil
}
