package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Values double as indexes into the block palette: 0 is reserved for empty
// cells, 1..5 are block colors and ColorGray paints the background.
type Color uint8

// Palette colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorOrange
	ColorGreen
	ColorViolet
	ColorGray
)

// PaletteSize is the number of palette entries.
const PaletteSize = 7

var rgba = [PaletteSize]color.RGBA{
	{0, 0, 0, 255},      // empty / glass background
	{228, 26, 28, 255},  // red
	{255, 255, 51, 255}, // yellow
	{255, 127, 0, 255},  // orange
	{77, 175, 74, 255},  // green
	{152, 78, 163, 255}, // violet
	{80, 80, 80, 255},   // gray
}

// Pixel returns the RGB color for this palette entry.
// Unknown entries map to the background gray.
func (c Color) Pixel() color.RGBA {
	if int(c) >= PaletteSize {
		return rgba[ColorGray]
	}
	return rgba[c]
}
