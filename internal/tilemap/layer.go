package tilemap

import (
	"fmt"
	"math"
)

// Filter restricts the tiles returned by TilesWithin and TilesWithinWorldXY.
type Filter struct {
	NotEmpty        bool
	Colliding       bool
	InterestingFace bool
}

// match reports whether t passes the filter.
func (f Filter) match(t *Tile) bool {
	if f.NotEmpty && t.IsEmpty() {
		return false
	}
	if f.Colliding && !t.IsColliding() {
		return false
	}
	if f.InterestingFace && !t.HasInterestingFace() {
		return false
	}
	return true
}

// Layer is a rectangular grid of tiles placed in world space.
//
// The grid is laid out in base tile units. Tiles may be larger than the base
// size; they then extend upwards and to the right from their cell's
// bottom-left corner.
type Layer struct {
	Name string

	X, Y           float64 // World position of the top-left corner
	ScaleX, ScaleY float64

	Width, Height int // In tiles

	TileWidth, TileHeight         float64
	BaseTileWidth, BaseTileHeight float64

	tiles     [][]*Tile
	callbacks map[int]Callback
}

// NewLayer creates an empty layer of width x height tiles.
func NewLayer(name string, width, height int, tileWidth, tileHeight float64) *Layer {
	l := &Layer{
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Width:          width,
		Height:         height,
		TileWidth:      tileWidth,
		TileHeight:     tileHeight,
		BaseTileWidth:  tileWidth,
		BaseTileHeight: tileHeight,
		callbacks:      make(map[int]Callback),
	}
	l.tiles = make([][]*Tile, height)
	for y := range l.tiles {
		l.tiles[y] = make([]*Tile, width)
		for x := range l.tiles[y] {
			l.tiles[y][x] = l.newTile(Empty, x, y)
		}
	}
	return l
}

func (l *Layer) newTile(index, x, y int) *Tile {
	return &Tile{
		Index:      index,
		X:          x,
		Y:          y,
		Width:      l.TileWidth,
		Height:     l.TileHeight,
		BaseWidth:  l.BaseTileWidth,
		BaseHeight: l.BaseTileHeight,
		layer:      l,
	}
}

// SetBaseTileSize sets the map's base tile size. Existing tiles keep their
// own size.
func (l *Layer) SetBaseTileSize(width, height float64) {
	l.BaseTileWidth = width
	l.BaseTileHeight = height
	l.each(func(t *Tile) {
		t.BaseWidth = width
		t.BaseHeight = height
	})
}

// Scale returns the layer scale.
func (l *Layer) Scale() (float64, float64) {
	return l.ScaleX, l.ScaleY
}

// SetPosition moves the layer in world space.
func (l *Layer) SetPosition(x, y float64) {
	l.X = x
	l.Y = y
}

// InBounds reports whether (tx, ty) is a cell of the layer.
func (l *Layer) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < l.Width && ty < l.Height
}

// TileAt returns the tile at (tx, ty), or nil when out of bounds. Empty cells
// return a tile with Index == Empty.
func (l *Layer) TileAt(tx, ty int) *Tile {
	if !l.InBounds(tx, ty) {
		return nil
	}
	return l.tiles[ty][tx]
}

// PutTileAt places a tile with the given index, recalculating the faces of
// the cell and its neighbours. The new tile collides if its index has been
// marked colliding on another tile of the layer.
func (l *Layer) PutTileAt(index, tx, ty int) (*Tile, error) {
	if !l.InBounds(tx, ty) {
		return nil, fmt.Errorf("tilemap: %s: cell (%d, %d) out of bounds", l.Name, tx, ty)
	}
	collides := l.indexCollides(index)
	t := l.newTile(index, tx, ty)
	if collides {
		t.SetCollision(true, true, true, true)
	}
	l.tiles[ty][tx] = t
	l.CalculateFacesWithin(tx-1, ty-1, 3, 3)
	return t, nil
}

// RemoveTileAt empties the cell at (tx, ty).
func (l *Layer) RemoveTileAt(tx, ty int) {
	if !l.InBounds(tx, ty) {
		return
	}
	l.tiles[ty][tx] = l.newTile(Empty, tx, ty)
	l.CalculateFacesWithin(tx-1, ty-1, 3, 3)
}

func (l *Layer) indexCollides(index int) bool {
	found := false
	l.each(func(t *Tile) {
		if t.Index == index && t.IsColliding() {
			found = true
		}
	})
	return found
}

// SetCollision marks every tile with one of the given indexes as colliding on
// all edges and recalculates faces.
func (l *Layer) SetCollision(indexes ...int) {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		set[i] = true
	}
	l.each(func(t *Tile) {
		if !t.IsEmpty() && set[t.Index] {
			t.SetCollision(true, true, true, true)
		}
	})
	l.CalculateFaces()
}

// SetCollisionBetween marks indexes in [start, stop] as colliding.
func (l *Layer) SetCollisionBetween(start, stop int) {
	var indexes []int
	for i := start; i <= stop; i++ {
		indexes = append(indexes, i)
	}
	l.SetCollision(indexes...)
}

// SetTileIndexCallback registers cb for every tile with the given index.
// A nil cb removes the callback.
func (l *Layer) SetTileIndexCallback(index int, cb Callback) {
	if cb == nil {
		delete(l.callbacks, index)
		return
	}
	l.callbacks[index] = cb
}

// IndexCallback returns the callback registered for index, if any.
func (l *Layer) IndexCallback(index int) Callback {
	return l.callbacks[index]
}

// SetTileLocationCallback attaches cb to every tile in the given cell area.
func (l *Layer) SetTileLocationCallback(tx, ty, width, height int, cb Callback) {
	for _, t := range l.TilesWithin(tx, ty, width, height, Filter{}) {
		t.CollisionCallback = cb
	}
}

// CalculateFaces recalculates the interesting faces of every tile.
func (l *Layer) CalculateFaces() {
	l.CalculateFacesWithin(0, 0, l.Width, l.Height)
}

// CalculateFacesWithin recalculates faces in the given cell area. A colliding
// tile exposes a face on every side whose neighbour does not collide.
func (l *Layer) CalculateFacesWithin(tx, ty, width, height int) {
	for _, t := range l.TilesWithin(tx, ty, width, height, Filter{}) {
		if !t.IsColliding() {
			t.ResetFaces()
			continue
		}
		t.FaceTop = !l.collidesAt(t.X, t.Y-1)
		t.FaceBottom = !l.collidesAt(t.X, t.Y+1)
		t.FaceLeft = !l.collidesAt(t.X-1, t.Y)
		t.FaceRight = !l.collidesAt(t.X+1, t.Y)
	}
}

func (l *Layer) collidesAt(tx, ty int) bool {
	t := l.TileAt(tx, ty)
	return t != nil && t.IsColliding()
}

// TilesWithin returns the tiles of the given cell area, clipped to the
// layer, row by row.
func (l *Layer) TilesWithin(tx, ty, width, height int, f Filter) []*Tile {
	if tx < 0 {
		width += tx
		tx = 0
	}
	if ty < 0 {
		height += ty
		ty = 0
	}
	if tx+width > l.Width {
		width = l.Width - tx
	}
	if ty+height > l.Height {
		height = l.Height - ty
	}

	var out []*Tile
	for y := ty; y < ty+height; y++ {
		for x := tx; x < tx+width; x++ {
			t := l.tiles[y][x]
			if f.match(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// TilesWithinWorldXY returns the tiles overlapping the world rectangle.
func (l *Layer) TilesWithinWorldXY(x, y, width, height float64, f Filter) []*Tile {
	xStart := int(l.WorldToTileX(x, true))
	yStart := int(l.WorldToTileY(y, true))
	xEnd := int(math.Ceil(l.WorldToTileX(x+width, false)))
	yEnd := int(math.Ceil(l.WorldToTileY(y+height, false)))
	return l.TilesWithin(xStart, yStart, xEnd-xStart, yEnd-yStart, f)
}

// TileToWorldX converts a column to the world x of its left edge.
func (l *Layer) TileToWorldX(tx int) float64 {
	return l.X + float64(tx)*l.BaseTileWidth*l.ScaleX
}

// TileToWorldY converts a row to the world y of its top edge.
func (l *Layer) TileToWorldY(ty int) float64 {
	return l.Y + float64(ty)*l.BaseTileHeight*l.ScaleY
}

// WorldToTileX converts a world x to a fractional column, floored when snap
// is set.
func (l *Layer) WorldToTileX(wx float64, snap bool) float64 {
	tx := (wx - l.X) / (l.BaseTileWidth * l.ScaleX)
	if snap {
		return math.Floor(tx)
	}
	return tx
}

// WorldToTileY converts a world y to a fractional row, floored when snap is
// set.
func (l *Layer) WorldToTileY(wy float64, snap bool) float64 {
	ty := (wy - l.Y) / (l.BaseTileHeight * l.ScaleY)
	if snap {
		return math.Floor(ty)
	}
	return ty
}

// WorldWidth returns the layer width in world units.
func (l *Layer) WorldWidth() float64 {
	return float64(l.Width) * l.BaseTileWidth * l.ScaleX
}

// WorldHeight returns the layer height in world units.
func (l *Layer) WorldHeight() float64 {
	return float64(l.Height) * l.BaseTileHeight * l.ScaleY
}

func (l *Layer) each(fn func(*Tile)) {
	for _, row := range l.tiles {
		for _, t := range row {
			fn(t)
		}
	}
}
