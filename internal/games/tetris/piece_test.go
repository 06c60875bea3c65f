package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPiece(wallKick bool) (*Piece, *Glass, *Catalog) {
	glass := NewGlass()
	return NewPiece(glass, NewLayout(1200, 800, 25), wallKick), glass, NewCatalog()
}

func TestNewLayoutCentersGlass(t *testing.T) {
	l := NewLayout(1200, 800, 25)
	assert.Equal(t, Layout{GlassX: 425, GlassY: 50, BlockSize: 25}, l)
	assert.Equal(t, 350, l.GlassPixelW())
	assert.Equal(t, 700, l.GlassPixelH())
}

func TestSpawnPosition(t *testing.T) {
	p, _, cat := newTestPiece(false)
	p.Spawn(ShapeT, cat)

	gx, gy := p.GlassPos()
	x, y := p.PixelPos()
	assert.Equal(t, 5, gx)
	assert.Equal(t, 0, gy)
	assert.Equal(t, 550, x)
	assert.Equal(t, 50, y)
	assert.Equal(t, ShapeT, p.Shape())
	assert.True(t, p.Fits())
}

func TestWallContainment(t *testing.T) {
	for _, s := range allShapes {
		t.Run(s.String(), func(t *testing.T) {
			p, glass, cat := newTestPiece(false)
			p.Spawn(s, cat)

			moves := 0
			for p.TryMoveLeft() {
				moves++
				require.Less(t, moves, GlassW, "piece never stopped moving left")
			}
			mg := p.Margins()
			gx, gy := p.GlassPos()
			assert.True(t, glass.BlockedLeft(&mg, gx, gy))
			assert.True(t, p.Fits())

			moves = 0
			for p.TryMoveRight() {
				moves++
				require.Less(t, moves, GlassW, "piece never stopped moving right")
			}
			gx, gy = p.GlassPos()
			assert.True(t, glass.BlockedRight(&mg, gx, gy))
			assert.True(t, p.Fits())
		})
	}
}

func TestOPieceScenario(t *testing.T) {
	p, glass, cat := newTestPiece(false)
	p.Spawn(ShapeO, cat)
	startX, _ := p.GlassPos()

	for i := 0; i < 3; i++ {
		p.TryMoveLeft()
	}
	p.TryMoveRight()

	gx, _ := p.GlassPos()
	require.Equal(t, startX-2, gx)

	steps := 0
	for !p.StepDown() {
		steps++
		require.Less(t, steps, GlassH, "piece never landed")
	}

	gx, gy := p.GlassPos()
	assert.Equal(t, GlassH-3, gy)
	for r := 1; r <= 2; r++ {
		for c := 1; c <= 2; c++ {
			assert.Equal(t, uint8(2), glass.Cell(gy+r, gx+c))
		}
	}
	assert.Equal(t, 4, glass.Filled())
}

func TestLandingOnOccupiedCell(t *testing.T) {
	p, glass, cat := newTestPiece(false)
	glass.SetCell(GlassH-1, 6, 1)
	p.Spawn(ShapeI, cat) // occupies column 6

	for !p.StepDown() {
	}

	_, gy := p.GlassPos()
	assert.Equal(t, GlassH-5, gy)
	for r := GlassH - 5; r < GlassH-1; r++ {
		assert.Equal(t, uint8(1), glass.Cell(r, 6))
	}
}

func TestLandingCommitsShapeUnchanged(t *testing.T) {
	p, glass, cat := newTestPiece(false)
	p.Spawn(ShapeS, cat)
	for !p.StepDown() {
	}

	gx, gy := p.GlassPos()
	m := p.Matrix()
	for r := 0; r < ItemBlocks; r++ {
		for c := 0; c < ItemBlocks; c++ {
			if v := m.At(r, c); v > 0 {
				assert.Equal(t, v, glass.Cell(gy+r, gx+c))
			}
		}
	}
	assert.Equal(t, 4, glass.Filled())
}

func TestRotateRecomputesMargins(t *testing.T) {
	p, _, cat := newTestPiece(false)
	p.Spawn(ShapeI, cat)

	require.True(t, p.Rotate())
	mg := p.Margins()
	assert.Equal(t, [ItemBlocks]int{NoMargin, 0, NoMargin, NoMargin}, mg.Left)
	assert.Equal(t, [ItemBlocks]int{NoMargin, 3, NoMargin, NoMargin}, mg.Right)

	m := p.Matrix()
	checkMargins(t, &m, mg)
}

func TestRotateRejectedAtWall(t *testing.T) {
	p, _, cat := newTestPiece(false)
	p.Spawn(ShapeI, cat)
	for p.TryMoveLeft() {
	}
	gx, _ := p.GlassPos()
	require.Equal(t, -1, gx)

	before := p.Matrix()
	assert.False(t, p.Rotate())
	assert.Equal(t, before, p.Matrix(), "rejected rotation must restore the orientation")
	assert.Equal(t, before, *cat.Item(ShapeI))
	assert.True(t, p.Fits())
}

func TestRotateWallKick(t *testing.T) {
	p, _, cat := newTestPiece(true)
	p.Spawn(ShapeI, cat)
	for p.TryMoveLeft() {
	}

	assert.True(t, p.Rotate())
	gx, _ := p.GlassPos()
	assert.Equal(t, 0, gx)
	assert.True(t, p.Fits())

	x, _ := p.PixelPos()
	assert.Equal(t, 425, x, "pixel position follows the kick")
}

func TestRotateRejectedByBlocks(t *testing.T) {
	p, glass, cat := newTestPiece(false)
	p.Spawn(ShapeI, cat)
	glass.SetCell(1, 8, 3) // where the horizontal bar would reach

	assert.False(t, p.Rotate())
	assert.Equal(t, Canonical(ShapeI), p.Matrix())
}

func TestRotateChangesCatalogOrientation(t *testing.T) {
	p, _, cat := newTestPiece(false)
	p.Spawn(ShapeL, cat)
	require.True(t, p.Rotate())

	q, _, _ := newTestPiece(false)
	q.Spawn(ShapeL, cat)
	assert.Equal(t, p.Matrix(), q.Matrix(), "next spawn keeps the rotated orientation")
}

func TestCells(t *testing.T) {
	p, _, cat := newTestPiece(false)
	p.Spawn(ShapeO, cat)

	assert.ElementsMatch(t, []Point{
		{Row: 1, Col: 6}, {Row: 1, Col: 7},
		{Row: 2, Col: 6}, {Row: 2, Col: 7},
	}, p.Cells())
}
