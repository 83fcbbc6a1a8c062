package tilemap

import "strings"

// FromRows builds a layer from ASCII rows. Every character other than '.'
// and ' ' becomes a tile whose index is the character's code point; tiles
// whose character appears in solid collide on all edges.
func FromRows(name string, rows []string, tileWidth, tileHeight float64, solid string) *Layer {
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}

	l := NewLayer(name, width, len(rows), tileWidth, tileHeight)
	for y, r := range rows {
		for x, ch := range []rune(r) {
			if ch == '.' || ch == ' ' {
				continue
			}
			t := l.newTile(int(ch), x, y)
			if strings.ContainsRune(solid, ch) {
				t.SetCollision(true, true, true, true)
			}
			l.tiles[y][x] = t
		}
	}
	l.CalculateFaces()
	return l
}

// Glyph returns the character a tile was built from.
func (t *Tile) Glyph() rune {
	if t.IsEmpty() {
		return ' '
	}
	return rune(t.Index)
}
