package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Terminal geometry: each block is two columns wide, the glass is framed
// by a one-cell border and followed by a status line.
const (
	blockCols   = 2
	boardCols   = GlassW*blockCols + 2
	boardRows   = GlassH + 2
	MinScreenW  = boardCols
	MinScreenH  = boardRows + 1
	blockGlyph  = '█'
	emptyGlyph  = '·'
	textPadding = 2
)

// Render draws the game into a terminal screen buffer.
func (g *Game) Render(dst *core.Screen) {
	v := g.View()
	v.Render(dst)
}

// Render draws the view into a terminal screen buffer.
func (v *View) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < MinScreenW || h < MinScreenH {
		drawCenteredText(dst, "Terminal too small", h/2-1)
		drawCenteredText(dst, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), h/2+1)
		return
	}

	ox := (w - boardCols) / 2
	oy := (h - MinScreenH) / 2
	dst.DrawBox(core.NewRect(ox, oy, boardCols, boardRows), core.ColorGray)

	for row := 0; row < GlassH; row++ {
		for col := 0; col < GlassW; col++ {
			x := ox + 1 + col*blockCols
			y := oy + 1 + row
			if c := v.At(row, col); c > 0 {
				dst.SetColored(x, y, blockGlyph, core.Color(c))
				dst.SetColored(x+1, y, blockGlyph, core.Color(c))
			} else {
				dst.SetColored(x, y, emptyGlyph, core.ColorGray)
			}
		}
	}

	status := fmt.Sprintf("Pieces: %d  Rows: %d", v.Pieces, v.Rows)
	drawCenteredText(dst, status, oy+boardRows)

	mid := oy + boardRows/2
	switch v.Phase {
	case PhaseWelcome:
		drawBanner(dst, mid, "TETRIS", "Press SPACE to start")
	case PhaseFinished:
		drawBanner(dst, mid, "GAME OVER", "Press SPACE to restart")
	}
}

// drawBanner clears a band across the glass and writes two centered lines.
func drawBanner(dst *core.Screen, y int, title, subtitle string) {
	width := len([]rune(subtitle))
	if n := len([]rune(title)); n > width {
		width = n
	}
	width += textPadding * 2
	x := (dst.Width() - width) / 2
	for yy := y - 2; yy <= y+2; yy++ {
		for xx := x; xx < x+width; xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	drawCenteredText(dst, title, y-1)
	drawCenteredText(dst, subtitle, y+1)
}

// drawCenteredText draws text centered horizontally.
func drawCenteredText(dst *core.Screen, text string, y int) {
	if y < 0 || y >= dst.Height() {
		return
	}
	dst.DrawTextCentered(y, text)
}

// Paint draws the game onto a pixel canvas.
func (g *Game) Paint(dst core.Canvas) {
	v := g.View()
	v.Paint(dst)
}

// Paint draws the view onto a pixel canvas laid out by v.Layout.
func (v *View) Paint(dst core.Canvas) {
	w, h := dst.Size()
	dst.FillRect(core.NewRect(0, 0, w, h), core.ColorGray.Pixel())

	l := v.Layout
	bs := l.BlockSize
	dst.FillRect(core.NewRect(l.GlassX, l.GlassY, l.GlassPixelW(), l.GlassPixelH()), core.ColorDefault.Pixel())

	for row := 0; row < GlassH; row++ {
		for col := 0; col < GlassW; col++ {
			if c := v.Glass[row][col]; c > 0 {
				r := core.NewRect(l.GlassX+col*bs, l.GlassY+row*bs, bs, bs)
				dst.FillRect(r, core.Color(c).Pixel())
			}
		}
	}

	if p := v.Piece; p != nil {
		for r := 0; r < ItemBlocks; r++ {
			for c := 0; c < ItemBlocks; c++ {
				if e := p.Matrix.At(r, c); e > 0 {
					rect := core.NewRect(p.X+c*bs, p.Y+r*bs, bs, bs)
					dst.FillRect(rect, core.Color(e).Pixel())
				}
			}
		}
	}

	switch v.Phase {
	case PhaseWelcome:
		v.paintBanner(dst, "TETRIS", "Press SPACE to start")
	case PhaseFinished:
		v.paintBanner(dst, "GAME OVER", "Press SPACE to restart")
	}
}

// Glyph width and line height of the canvas text face.
const (
	glyphW = 6
	lineH  = 16
)

func (v *View) paintBanner(dst core.Canvas, title, subtitle string) {
	l := v.Layout
	cx := l.GlassX + l.GlassPixelW()/2
	cy := l.GlassY + l.GlassPixelH()/2
	dst.Text(cx-len(title)*glyphW/2, cy-lineH, title)
	dst.Text(cx-len(subtitle)*glyphW/2, cy+lineH/2, subtitle)
}
