package tetris

// PieceView is a read-only copy of the falling piece.
type PieceView struct {
	Shape  Shape
	Matrix Matrix
	GX, GY int
	X, Y   int
}

// View is a read-only copy of everything a renderer needs.
// Piece is nil unless a piece is spawning or falling.
type View struct {
	Phase  Phase
	Glass  [GlassH][GlassW]uint8
	Piece  *PieceView
	Layout Layout
	Pieces int
	Rows   int
}

// View returns a copy of the session for drawing.
func (g *Game) View() View {
	v := View{
		Phase:  g.phase,
		Glass:  g.glass.Rows(),
		Layout: g.layout,
		Pieces: g.pieces,
		Rows:   g.rows,
	}
	if g.piece != nil && (g.phase.Falling() || g.phase == PhaseItemStarted) {
		gx, gy := g.piece.GlassPos()
		x, y := g.piece.PixelPos()
		v.Piece = &PieceView{
			Shape:  g.piece.Shape(),
			Matrix: g.piece.Matrix(),
			GX:     gx,
			GY:     gy,
			X:      x,
			Y:      y,
		}
	}
	return v
}

// At returns the color at glass (row, col) with the falling piece
// overlaid. Out-of-range coordinates return 0.
func (v *View) At(row, col int) uint8 {
	if !InBounds(row, col) {
		return 0
	}
	if p := v.Piece; p != nil {
		r, c := row-p.GY, col-p.GX
		if r >= 0 && r < ItemBlocks && c >= 0 && c < ItemBlocks {
			if m := p.Matrix.At(r, c); m > 0 {
				return m
			}
		}
	}
	return v.Glass[row][col]
}
