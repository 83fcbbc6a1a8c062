package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X', Color: ColorRed})
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", got)
	}

	s.Set(6, 5, 'Y')
	if s.Get(6, 5) != 'Y' || s.GetCell(6, 5).Color != ColorDefault {
		t.Errorf("Set() should write an uncolored rune")
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillCell(Cell{Rune: '#', Color: ColorBlue})
	s.Clear()

	if got := s.String(); got != "    \n    \n    \n    " {
		t.Errorf("String() after Clear = %q", got)
	}
	if s.GetCell(2, 2).Color != ColorDefault {
		t.Error("Clear() should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorCyan)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("DrawText: expected cyan %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Multi-byte runes advance one cell each
	s.DrawText(0, 2, "·x", ColorDefault)
	if s.Get(1, 2) != 'x' {
		t.Errorf("Get(1, 2) = %q, expected 'x'", s.Get(1, 2))
	}

	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#', ColorYellow)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorMagenta)

	corners := []struct {
		x, y     int
		expected rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.expected {
			t.Errorf("Get(%d, %d) = %q, expected %q", c.x, c.y, got, c.expected)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("DrawBox edges missing")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should not fill the inside")
	}

	thin := NewScreen(5, 5)
	thin.DrawBox(NewRect(0, 0, 3, 1), ColorDefault)
	if thin.Row(0) != "+++  " {
		t.Errorf("Row(0) = %q, expected a collapsed line", thin.Row(0))
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		cells          [][2]int
	}{
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"reversed vertical", 2, 3, 2, 0, [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(5, 5)
			s.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, '*', ColorGreen)
			for _, c := range tc.cells {
				if s.Get(c[0], c[1]) != '*' {
					t.Errorf("DrawLine: expected '*' at (%d, %d)", c[0], c[1])
				}
			}
			if n := strings.Count(s.String(), "*"); n != len(tc.cells) {
				t.Errorf("DrawLine drew %d cells, expected %d", n, len(tc.cells))
			}
		})
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorRed)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") || s.GetCell(0, 0).Color != ColorRed {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}

	s.Resize(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("negative width should clamp to zero, got %d", s.Width())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test", ColorDefault)

	row := s.Row(2)
	if row != "Test      " {
		t.Errorf("Row(2) = %q, expected %q", row, "Test      ")
	}
	if s.Row(-1) != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}

func TestScreenClip(t *testing.T) {
	s := NewScreen(6, 4)
	s.SetClip(NewRect(1, 1, 3, 2))

	if b := s.Bounds(); b != NewRect(1, 1, 3, 2) {
		t.Errorf("Bounds() = %v, expected the clip", b)
	}

	s.DrawRect(NewRect(-100, -100, 1000, 1000), '#', ColorRed)
	s.DrawLine(-100, 2, 100, 2, '*', ColorGreen)
	s.DrawLine(-100, 0, 100, 0, '*', ColorGreen)
	s.Set(0, 0, 'x')

	expected := []string{
		"      ",
		" ###  ",
		" ***  ",
		"      ",
	}
	for y, row := range expected {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}

	s.ResetClip()
	s.Set(0, 0, 'x')
	if s.Get(0, 0) != 'x' {
		t.Error("ResetClip() did not lift the clip")
	}
}

func TestScreenDrawBoxLarge(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(-1<<24, 1, 1<<25, 1<<24), ColorDefault)

	if got := s.Row(1); got != "────" {
		t.Errorf("Row(1) = %q, expected the top edge", got)
	}
	if got := s.Row(2); got != "    " {
		t.Errorf("Row(2) = %q, expected an empty row", got)
	}
}
