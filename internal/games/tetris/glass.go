package tetris

import "fmt"

// Glass dimensions in blocks.
const (
	GlassW = 14
	GlassH = 28
)

// MaxCellValue is the largest color index a glass cell may hold.
const MaxCellValue = 5

// Glass is the fixed grid pieces fall into.
// Cell values are 0 (empty) or a color index 1..MaxCellValue.
type Glass struct {
	cells [GlassH][GlassW]uint8
}

// NewGlass returns an empty glass.
func NewGlass() *Glass {
	return &Glass{}
}

// Clear empties every cell.
func (g *Glass) Clear() {
	g.cells = [GlassH][GlassW]uint8{}
}

func checkBounds(row, col int) {
	if row < 0 || row >= GlassH || col < 0 || col >= GlassW {
		panic(fmt.Sprintf("tetris: glass cell (%d,%d) out of range %dx%d", row, col, GlassH, GlassW))
	}
}

// Cell returns the value at (row, col).
// Out-of-range coordinates are an invariant violation and panic.
func (g *Glass) Cell(row, col int) uint8 {
	checkBounds(row, col)
	return g.cells[row][col]
}

// SetCell stores v at (row, col). Values above MaxCellValue panic.
func (g *Glass) SetCell(row, col int, v uint8) {
	checkBounds(row, col)
	if v > MaxCellValue {
		panic(fmt.Sprintf("tetris: cell value %d out of range", v))
	}
	g.cells[row][col] = v
}

// InBounds reports whether (row, col) lies inside the glass.
func InBounds(row, col int) bool {
	return row >= 0 && row < GlassH && col >= 0 && col < GlassW
}

// Commit writes every occupied cell of m, placed with its top-left corner
// at (gx, gy), into the glass.
func (g *Glass) Commit(m *Matrix, gx, gy int) {
	for r := 0; r < ItemBlocks; r++ {
		for c := 0; c < ItemBlocks; c++ {
			if v := m.At(r, c); v > 0 {
				g.SetCell(gy+r, gx+c, v)
			}
		}
	}
}

// Fits reports whether every occupied cell of m at (gx, gy) lands inside
// the glass on an empty cell.
func (g *Glass) Fits(m *Matrix, gx, gy int) bool {
	for r := 0; r < ItemBlocks; r++ {
		for c := 0; c < ItemBlocks; c++ {
			if m.At(r, c) == 0 {
				continue
			}
			row, col := gy+r, gx+c
			if !InBounds(row, col) || g.cells[row][col] > 0 {
				return false
			}
		}
	}
	return true
}

// RowFull reports whether every cell in row is occupied.
func (g *Glass) RowFull(row int) bool {
	checkBounds(row, 0)
	for _, v := range g.cells[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

func (g *Glass) rowEmpty(row int) bool {
	for _, v := range g.cells[row] {
		if v > 0 {
			return false
		}
	}
	return true
}

// DetectAndClearFullRow removes the lowest full row, if any.
//
// Rows above it shift down one at a time until the row just copied is
// empty; if the shift reaches the top, row 0 is zero-filled. At most one
// row is removed per call, so callers loop until it returns false.
func (g *Glass) DetectAndClearFullRow() bool {
	full := -1
	for r := GlassH - 1; r >= 0; r-- {
		if g.RowFull(r) {
			full = r
			break
		}
	}
	if full < 0 {
		return false
	}

	for r := full; r >= 0; r-- {
		if r == 0 {
			g.cells[0] = [GlassW]uint8{}
			break
		}
		g.cells[r] = g.cells[r-1]
		if g.rowEmpty(r) {
			break
		}
	}
	return true
}

// BlockedLeft reports whether a piece with margins mg at (gx, gy) cannot
// move one column left.
func (g *Glass) BlockedLeft(mg *Margins, gx, gy int) bool {
	for i := 0; i < ItemBlocks; i++ {
		if mg.Left[i] == NoMargin {
			continue
		}
		col := gx + mg.Left[i]
		if col <= 0 {
			return true
		}
		if g.occupied(gy+i, col-1) {
			return true
		}
	}
	return false
}

// BlockedRight reports whether a piece with margins mg at (gx, gy) cannot
// move one column right.
func (g *Glass) BlockedRight(mg *Margins, gx, gy int) bool {
	for i := 0; i < ItemBlocks; i++ {
		if mg.Right[i] == NoMargin {
			continue
		}
		col := gx + mg.Right[i]
		if col >= GlassW-1 {
			return true
		}
		if g.occupied(gy+i, col+1) {
			return true
		}
	}
	return false
}

// BlockedBottom reports whether a piece with margins mg at (gx, gy) cannot
// fall one row.
func (g *Glass) BlockedBottom(mg *Margins, gx, gy int) bool {
	for i := 0; i < ItemBlocks; i++ {
		if mg.Bottom[i] == NoMargin {
			continue
		}
		row := gy + mg.Bottom[i]
		if row+2 > GlassH {
			return true
		}
		if g.occupied(row+1, gx+i) {
			return true
		}
	}
	return false
}

// occupied treats rows above the glass as empty so a piece may hang over
// the top edge while it enters.
func (g *Glass) occupied(row, col int) bool {
	if row < 0 {
		return false
	}
	return g.Cell(row, col) > 0
}

// Rows returns a copy of the grid contents.
func (g *Glass) Rows() [GlassH][GlassW]uint8 {
	return g.cells
}

// Filled returns the number of occupied cells.
func (g *Glass) Filled() int {
	n := 0
	for r := range g.cells {
		for _, v := range g.cells[r] {
			if v > 0 {
				n++
			}
		}
	}
	return n
}
