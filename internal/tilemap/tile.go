// Package tilemap provides the tile layer consumed by the physics world:
// a grid of tiles with per-edge collision and interesting-face flags,
// world/tile coordinate conversion and collision callbacks.
package tilemap

// Empty is the index of a cell without a tile.
const Empty = -1

// Callback is invoked when a body touches a tile. Returning true marks the
// contact as handled and skips separation for that tile.
type Callback func(obj any, tile *Tile) bool

// Tile is a single cell of a Layer.
type Tile struct {
	Index int
	X, Y  int // Column and row in the layer

	// Size in pixels. BaseWidth/BaseHeight are the map's base tile size,
	// which differs from Width/Height on layers with oversized tiles.
	Width, Height         float64
	BaseWidth, BaseHeight float64

	CollideLeft, CollideRight, CollideUp, CollideDown bool
	FaceLeft, FaceRight, FaceTop, FaceBottom          bool

	// CollisionCallback takes priority over the layer's index callback.
	CollisionCallback Callback

	layer *Layer
}

// Layer returns the layer this tile belongs to.
func (t *Tile) Layer() *Layer {
	return t.layer
}

// IsEmpty reports whether the cell holds no tile.
func (t *Tile) IsEmpty() bool {
	return t.Index == Empty
}

// CanCollide reports whether any edge collides or a callback is attached.
func (t *Tile) CanCollide() bool {
	return t.IsColliding() || t.CollisionCallback != nil
}

// IsColliding reports whether any edge collides.
func (t *Tile) IsColliding() bool {
	return t.CollideLeft || t.CollideRight || t.CollideUp || t.CollideDown
}

// HasInterestingFace reports whether any face is exposed for collision.
func (t *Tile) HasInterestingFace() bool {
	return t.FaceLeft || t.FaceRight || t.FaceTop || t.FaceBottom
}

// SetCollision sets the collide flags of every edge. Faces are recalculated
// by the layer.
func (t *Tile) SetCollision(left, right, up, down bool) {
	t.CollideLeft = left
	t.CollideRight = right
	t.CollideUp = up
	t.CollideDown = down
	t.FaceLeft = left
	t.FaceRight = right
	t.FaceTop = up
	t.FaceBottom = down
}

// ResetFaces clears every interesting face.
func (t *Tile) ResetFaces() {
	t.FaceLeft = false
	t.FaceRight = false
	t.FaceTop = false
	t.FaceBottom = false
}
