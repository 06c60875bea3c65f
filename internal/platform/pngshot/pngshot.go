// Package pngshot renders games to PNG images with fogleman/gg.
package pngshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// fontSize gives a monospace advance close to the 6px debug font used by
// the window backend, so text placement matches between the two.
const fontSize = 10.0

// Canvas is a core.Canvas backed by an in-memory gg context.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a w x h canvas with the Go Mono font loaded.
func NewCanvas(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pngshot: invalid size %dx%d", w, h)
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("pngshot: failed to parse font: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	return &Canvas{dc: dc}, nil
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.dc.Width(), c.dc.Height()
}

// FillRect paints a solid rectangle.
func (c *Canvas) FillRect(r core.Rect, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.dc.Fill()
}

// Text draws s in white with its top-left corner at (x, y).
func (c *Canvas) Text(x, y int, s string) {
	c.dc.SetColor(color.White)
	c.dc.DrawStringAnchored(s, float64(x), float64(y), 0, 1)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Render paints p onto a new w x h canvas.
func Render(p registry.Painter, w, h int) (*Canvas, error) {
	c, err := NewCanvas(w, h)
	if err != nil {
		return nil, err
	}
	p.Paint(c)
	return c, nil
}

// Save renders p and writes it as a PNG file, creating parent directories.
func Save(p registry.Painter, w, h int, path string) error {
	c, err := Render(p, w, h)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("pngshot: cannot create directory: %w", err)
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("pngshot: cannot save %s: %w", path, err)
	}
	return nil
}

// Path returns a timestamped file name for a snapshot of gameID in dir.
func Path(dir, gameID string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", gameID, t.Format("20060102_150405")))
}
