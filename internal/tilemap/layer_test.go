package tilemap

import "testing"

func TestFromRowsFaces(t *testing.T) {
	l := FromRows("level", []string{
		"....",
		".##.",
		".##.",
		"....",
	}, 10, 10, "#")

	tests := []struct {
		name                     string
		x, y                     int
		top, bottom, left, right bool
	}{
		{"top-left", 1, 1, true, false, true, false},
		{"top-right", 2, 1, true, false, false, true},
		{"bottom-left", 1, 2, false, true, true, false},
		{"bottom-right", 2, 2, false, true, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tile := l.TileAt(tc.x, tc.y)
			if tile.FaceTop != tc.top || tile.FaceBottom != tc.bottom ||
				tile.FaceLeft != tc.left || tile.FaceRight != tc.right {
				t.Errorf("faces = (top %v, bottom %v, left %v, right %v), expected (%v, %v, %v, %v)",
					tile.FaceTop, tile.FaceBottom, tile.FaceLeft, tile.FaceRight,
					tc.top, tc.bottom, tc.left, tc.right)
			}
		})
	}

	if l.TileAt(0, 0).HasInterestingFace() {
		t.Error("empty tile should have no faces")
	}
	if l.TileAt(-1, 0) != nil {
		t.Error("TileAt() out of bounds should be nil")
	}
}

func TestNonSolidTilesHaveNoFaces(t *testing.T) {
	l := FromRows("deco", []string{"~~", "##"}, 8, 8, "#")
	water := l.TileAt(0, 0)
	if water.IsEmpty() {
		t.Fatal("decoration tile should not be empty")
	}
	if water.IsColliding() || water.HasInterestingFace() {
		t.Error("non-solid tile should not collide")
	}
	if !l.TileAt(0, 1).FaceTop {
		t.Error("solid tile under non-solid tile should expose its top face")
	}
}

func TestTilesWithinWorldXY(t *testing.T) {
	l := FromRows("level", []string{
		"#...",
		"....",
		"..##",
	}, 16, 16, "#")
	l.SetPosition(100, 50)

	solid := Filter{NotEmpty: true, Colliding: true, InterestingFace: true}

	tests := []struct {
		name       string
		x, y, w, h float64
		expected   int
	}{
		{"whole layer", 100, 50, 64, 48, 3},
		{"top-left cell only", 100, 50, 16, 16, 1},
		{"partial cells", 130, 75, 20, 10, 2},
		{"left of layer", 0, 0, 50, 50, 0},
		{"straddling edge", 90, 40, 12, 12, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := l.TilesWithinWorldXY(tc.x, tc.y, tc.w, tc.h, solid)
			if len(got) != tc.expected {
				t.Errorf("TilesWithinWorldXY() = %d tiles, expected %d", len(got), tc.expected)
			}
		})
	}
}

func TestCoordinateConversion(t *testing.T) {
	l := NewLayer("grid", 10, 10, 32, 32)
	l.SetPosition(16, 8)
	l.ScaleX, l.ScaleY = 2, 1

	if x := l.TileToWorldX(3); x != 16+3*64 {
		t.Errorf("TileToWorldX(3) = %v, expected %v", x, 16+3*64)
	}
	if y := l.TileToWorldY(2); y != 8+2*32 {
		t.Errorf("TileToWorldY(2) = %v, expected %v", y, 8+2*32)
	}
	if tx := l.WorldToTileX(16+64*4+10, true); tx != 4 {
		t.Errorf("WorldToTileX() = %v, expected 4", tx)
	}
	if ty := l.WorldToTileY(7, true); ty != -1 {
		t.Errorf("WorldToTileY() = %v, expected -1", ty)
	}
}

func TestPutTileAtAndCallbacks(t *testing.T) {
	l := FromRows("level", []string{"#..", "..."}, 10, 10, "#")

	tile, err := l.PutTileAt('#', 1, 0)
	if err != nil {
		t.Fatalf("PutTileAt() error: %v", err)
	}
	if !tile.IsColliding() {
		t.Error("tile with a colliding index should collide")
	}
	if l.TileAt(0, 0).FaceRight {
		t.Error("left tile should lose its right face next to new neighbour")
	}
	if _, err := l.PutTileAt('#', 5, 5); err == nil {
		t.Error("PutTileAt() out of bounds should fail")
	}

	l.SetTileIndexCallback('#', func(any, *Tile) bool { return true })
	if l.IndexCallback('#') == nil {
		t.Error("IndexCallback() = nil after SetTileIndexCallback")
	}
	l.SetTileIndexCallback('#', nil)
	if l.IndexCallback('#') != nil {
		t.Error("IndexCallback() should be nil after removal")
	}

	l.SetTileLocationCallback(0, 0, 2, 1, func(any, *Tile) bool { return false })
	if l.TileAt(1, 0).CollisionCallback == nil || l.TileAt(2, 0).CollisionCallback != nil {
		t.Error("SetTileLocationCallback() touched the wrong cells")
	}

	l.RemoveTileAt(1, 0)
	if !l.TileAt(0, 0).FaceRight {
		t.Error("right face should be exposed again after neighbour removal")
	}
}

func TestSetCollisionBetween(t *testing.T) {
	l := FromRows("level", []string{"abc"}, 8, 8, "")
	l.SetCollisionBetween('a', 'b')
	if !l.TileAt(0, 0).IsColliding() || !l.TileAt(1, 0).IsColliding() {
		t.Error("tiles in range should collide")
	}
	if l.TileAt(2, 0).IsColliding() {
		t.Error("tile outside range should not collide")
	}
	if l.TileAt(1, 0).FaceLeft {
		t.Error("adjacent colliding tiles should not expose shared faces")
	}
}
