package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// canvas adapts an ebiten image to core.Canvas.
type canvas struct {
	dst *ebiten.Image
}

func (c canvas) Size() (w, h int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c canvas) FillRect(r core.Rect, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

// Text uses the built-in debug font, which is always white.
func (c canvas) Text(x, y int, s string) {
	ebitenutil.DebugPrintAt(c.dst, s, x, y)
}
