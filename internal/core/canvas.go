package core

import "image/color"

// Canvas is a pixel-addressed drawing target.
// The window backend and the PNG exporter both implement it, so a game
// paints itself once and any pixel surface can show it.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (w, h int)

	// FillRect paints a solid rectangle.
	FillRect(r Rect, c color.Color)

	// Text draws a single line of text with its top-left corner at (x, y).
	Text(x, y int, s string)
}
