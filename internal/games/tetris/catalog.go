// Package tetris implements the falling-block game: the piece catalog, the
// glass (grid) with its collision queries, the active-piece controller and
// the phase state machine that drives them from timers and input edges.
package tetris

import "fmt"

// ItemBlocks is the side length of a piece bounding box.
const ItemBlocks = 4

// Matrix is a 4×4 block matrix stored row-major.
// 0 is an empty cell, 1..5 a palette color.
type Matrix [ItemBlocks * ItemBlocks]uint8

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) uint8 {
	return m[row*ItemBlocks+col]
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v uint8) {
	m[row*ItemBlocks+col] = v
}

// Count returns the number of occupied cells.
func (m *Matrix) Count() int {
	n := 0
	for _, v := range m {
		if v > 0 {
			n++
		}
	}
	return n
}

// RotateClockwise turns m by 90° clockwise in place.
//
// The matrix is walked ring by ring (outer ring 0, inner ring 1) and every
// 4-element cycle inside a ring is shifted one position. The index
// arithmetic assumes ItemBlocks == 4; four calls restore the original.
func RotateClockwise(m *Matrix) {
	const n = ItemBlocks
	for ring := 0; ring < n/2; ring++ {
		for j := ring; j < n-ring-1; j++ {
			top := ring*n + j
			left := (n-1-j)*n + ring
			bottom := (n-1-ring)*n + (n - 1 - j)
			right := j*n + (n - 1 - ring)

			tmp := m[top]
			m[top] = m[left]
			m[left] = m[bottom]
			m[bottom] = m[right]
			m[right] = tmp
		}
	}
}

// Shape identifies one of the seven tetrominoes.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
	ShapeT
)

// ShapeCount is the number of shapes in the catalog.
const ShapeCount = 7

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Colors repeat across shapes; they are cosmetic only.
var canonical = [ShapeCount]Matrix{
	ShapeI: {
		0, 1, 0, 0,
		0, 1, 0, 0,
		0, 1, 0, 0,
		0, 1, 0, 0,
	},
	ShapeO: {
		0, 0, 0, 0,
		0, 2, 2, 0,
		0, 2, 2, 0,
		0, 0, 0, 0,
	},
	ShapeL: {
		0, 0, 0, 0,
		0, 3, 0, 0,
		0, 3, 0, 0,
		0, 3, 3, 0,
	},
	ShapeJ: {
		0, 0, 0, 0,
		0, 0, 3, 0,
		0, 0, 3, 0,
		0, 3, 3, 0,
	},
	ShapeS: {
		0, 0, 0, 0,
		0, 4, 0, 0,
		0, 4, 4, 0,
		0, 0, 4, 0,
	},
	ShapeZ: {
		0, 0, 0, 0,
		0, 0, 4, 0,
		0, 4, 4, 0,
		0, 4, 0, 0,
	},
	ShapeT: {
		0, 0, 0, 0,
		0, 5, 0, 0,
		5, 5, 5, 0,
		0, 0, 0, 0,
	},
}

// Canonical returns a copy of the initial orientation of s.
func Canonical(s Shape) Matrix {
	return canonical[s]
}

// Catalog holds the current orientation of every shape.
//
// Orientations are rotated in place and never reset during a session, so a
// shape spawns in whatever orientation it was last left in.
type Catalog struct {
	items [ShapeCount]Matrix
}

// NewCatalog returns a catalog with every shape in its initial orientation.
func NewCatalog() *Catalog {
	return &Catalog{items: canonical}
}

// Item returns the mutable orientation of s.
func (c *Catalog) Item(s Shape) *Matrix {
	return &c.items[s]
}
