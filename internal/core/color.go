package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette colors available to scenes and debug drawing.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"grey":           ColorGray,
}

// ParseColor returns the palette color with the given name. Unknown names
// map to ColorDefault.
func ParseColor(name string) Color {
	return colorNames[strings.ToLower(strings.TrimSpace(name))]
}

// rgb approximations of the palette, indexed by Color.
var paletteRGB = [...][3]int{
	ColorDefault:       {192, 192, 192},
	ColorRed:           {205, 0, 0},
	ColorGreen:         {0, 205, 0},
	ColorYellow:        {205, 205, 0},
	ColorBlue:          {0, 0, 238},
	ColorMagenta:       {205, 0, 205},
	ColorCyan:          {0, 205, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightRed:     {255, 0, 0},
	ColorBrightGreen:   {0, 255, 0},
	ColorBrightYellow:  {255, 255, 0},
	ColorBrightBlue:    {92, 92, 255},
	ColorBrightMagenta: {255, 0, 255},
	ColorBrightCyan:    {0, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
	ColorOrange:        {255, 135, 0},
	ColorGray:          {138, 138, 138},
}

// NearestColor maps a 0xRRGGBB value to the closest palette color.
func NearestColor(rgb uint32) Color {
	r := int(rgb >> 16 & 0xff)
	g := int(rgb >> 8 & 0xff)
	b := int(rgb & 0xff)

	best := ColorDefault
	bestDist := -1
	for c := ColorRed; c <= ColorGray; c++ {
		p := paletteRGB[c]
		dr, dg, db := r-p[0], g-p[1], b-p[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
