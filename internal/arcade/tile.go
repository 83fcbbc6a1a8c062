package arcade

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/tilemap"
)

// Tile queries for colliding and overlapping sprites.
var (
	solidTiles   = tilemap.Filter{NotEmpty: true, Colliding: true, InterestingFace: true}
	nonEmptyTile = tilemap.Filter{NotEmpty: true}
)

// tileRect is a tile's extent in world space.
type tileRect struct {
	left, top, right, bottom float64
}

// collideSpriteVsTilemapLayer tests a sprite's dynamic body against every
// tile of the layer under it.
func (r *collideRun) collideSpriteVsTilemapLayer(sprite GameObject, layer *tilemap.Layer) {
	body, ok := sprite.Body().(*Body)
	if !ok || body == nil || !body.Enable {
		return
	}

	x, y := body.Position.X, body.Position.Y
	w, h := body.Width, body.Height

	// Oversized tiles grow up and to the right from their cell, so widen the
	// query to catch tiles whose cell lies outside the body.
	if layer.TileWidth > layer.BaseTileWidth {
		xDiff := (layer.TileWidth - layer.BaseTileWidth) * layer.ScaleX
		x -= xDiff
		w += xDiff
	}
	if layer.TileHeight > layer.BaseTileHeight {
		h += (layer.TileHeight - layer.BaseTileHeight) * layer.ScaleY
	}

	filter := solidTiles
	if r.overlapOnly {
		filter = nonEmptyTile
	}

	for _, tile := range layer.TilesWithinWorldXY(x, y, w, h, filter) {
		rect := tileRect{
			left: layer.TileToWorldX(tile.X),
			top:  layer.TileToWorldY(tile.Y),
		}
		if tile.BaseHeight != tile.Height {
			rect.top -= (tile.Height - tile.BaseHeight) * layer.ScaleY
		}
		rect.right = rect.left + tile.Width*layer.ScaleX
		rect.bottom = rect.top + tile.Height*layer.ScaleY

		if !tileIntersectsBody(rect, &body.bodyState) {
			continue
		}
		if r.process != nil && !r.process(Pair{A: sprite, Tile: tile}) {
			continue
		}
		if !processTileCallbacks(tile, sprite) {
			continue
		}
		if !r.overlapOnly && !r.w.separateTile(body, tile, rect) {
			continue
		}

		r.total++
		if r.collide != nil {
			r.collide(Pair{A: sprite, Tile: tile})
		}
		emitTileContact(sprite, body, tile, r.overlapOnly)
	}
}

// emitTileContact publishes a tile contact on the sprite's own emitter.
func emitTileContact(sprite GameObject, body *Body, tile *tilemap.Tile, overlapOnly bool) {
	src, ok := sprite.(EventSource)
	if !ok {
		return
	}
	ev := CollisionEvent{A: sprite, BodyA: body, Tile: tile}
	switch {
	case overlapOnly && body.OnOverlap:
		src.Events().Emit(EventOverlap, ev)
	case !overlapOnly && body.OnCollide:
		src.Events().Emit(EventCollide, ev)
	}
}

// tileIntersectsBody is an edge-inclusive rectangle test.
func tileIntersectsBody(t tileRect, b *bodyState) bool {
	return !(b.Right() < t.left ||
		b.Bottom() < t.top ||
		b.Left() > t.right ||
		b.Top() > t.bottom)
}

// processTileCallbacks runs the tile's own callback, or else the layer's
// callback for its index. A callback returning true claims the contact and
// the tile is skipped.
func processTileCallbacks(tile *tilemap.Tile, sprite GameObject) bool {
	if tile.CollisionCallback != nil {
		return !tile.CollisionCallback(sprite, tile)
	}
	if l := tile.Layer(); l != nil {
		if cb := l.IndexCallback(tile.Index); cb != nil {
			return !cb(sprite, tile)
		}
	}
	return true
}

// separateTile pushes body out of a single tile, choosing the axis of least
// penetration first.
func (w *World) separateTile(body *Body, tile *tilemap.Tile, rect tileRect) bool {
	faceHorizontal := tile.FaceLeft || tile.FaceRight
	faceVertical := tile.FaceTop || tile.FaceBottom
	if !faceHorizontal && !faceVertical {
		return false
	}

	var ox, oy float64
	minX, minY := 0.0, 1.0

	switch dx, dy := body.DeltaAbsX(), body.DeltaAbsY(); {
	case dx > dy:
		minX = -1
	case dx < dy:
		minY = -1
	}

	if body.DeltaX() != 0 && body.DeltaY() != 0 && faceHorizontal && faceVertical {
		minX = min(math.Abs(body.Left()-rect.right), math.Abs(body.Right()-rect.left))
		minY = min(math.Abs(body.Top()-rect.bottom), math.Abs(body.Bottom()-rect.top))
	}

	if minX < minY {
		if faceHorizontal {
			ox = w.tileCheckX(body, tile, rect)
			if ox != 0 && !tileIntersectsBody(rect, &body.bodyState) {
				return true
			}
		}
		if faceVertical {
			oy = w.tileCheckY(body, tile, rect)
		}
	} else {
		if faceVertical {
			oy = w.tileCheckY(body, tile, rect)
			if oy != 0 && !tileIntersectsBody(rect, &body.bodyState) {
				return true
			}
		}
		if faceHorizontal {
			ox = w.tileCheckX(body, tile, rect)
		}
	}

	return ox != 0 || oy != 0
}

// tileCheckX resolves horizontal penetration into a tile's exposed side.
func (w *World) tileCheckX(body *Body, tile *tilemap.Tile, rect tileRect) float64 {
	var ox float64
	dx := body.DeltaX()

	if dx < 0 && tile.CollideRight && body.CheckCollision.Left {
		if tile.FaceRight && body.Left() < rect.right {
			ox = body.Left() - rect.right
			if ox < -w.TileBias {
				ox = 0
			}
		}
	} else if dx > 0 && tile.CollideLeft && body.CheckCollision.Right {
		if tile.FaceLeft && body.Right() > rect.left {
			ox = body.Right() - rect.left
			if ox > w.TileBias {
				ox = 0
			}
		}
	}

	if ox != 0 {
		if body.CustomSeparateX {
			body.OverlapX = ox
		} else {
			processTileSeparationX(body, ox)
		}
	}
	return ox
}

// tileCheckY resolves vertical penetration into a tile's exposed side.
func (w *World) tileCheckY(body *Body, tile *tilemap.Tile, rect tileRect) float64 {
	var oy float64
	dy := body.DeltaY()

	if dy < 0 && tile.CollideDown && body.CheckCollision.Up {
		if tile.FaceBottom && body.Top() < rect.bottom {
			oy = body.Top() - rect.bottom
			if oy < -w.TileBias {
				oy = 0
			}
		}
	} else if dy > 0 && tile.CollideUp && body.CheckCollision.Down {
		if tile.FaceTop && body.Bottom() > rect.top {
			oy = body.Bottom() - rect.top
			if oy > w.TileBias {
				oy = 0
			}
		}
	}

	if oy != 0 {
		if body.CustomSeparateY {
			body.OverlapY = oy
		} else {
			processTileSeparationY(body, oy)
		}
	}
	return oy
}

func processTileSeparationX(body *Body, x float64) {
	blockX(&body.bodyState, x > 0)
	body.Position.X -= x
	if body.Bounce.X == 0 {
		body.Velocity.X = 0
	} else {
		body.Velocity.X = -body.Velocity.X * body.Bounce.X
	}
}

func processTileSeparationY(body *Body, y float64) {
	blockY(&body.bodyState, y > 0)
	body.Position.Y -= y
	if body.Bounce.Y == 0 {
		body.Velocity.Y = 0
	} else {
		body.Velocity.Y = -body.Velocity.Y * body.Bounce.Y
	}
}
