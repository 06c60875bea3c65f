package tetris

// Layout places the glass in window pixel space.
type Layout struct {
	GlassX    int
	GlassY    int
	BlockSize int
}

// NewLayout centers the glass in a window of the given pixel size.
func NewLayout(windowW, windowH, blockSize int) Layout {
	return Layout{
		GlassX:    (windowW - GlassW*blockSize) / 2,
		GlassY:    (windowH - GlassH*blockSize) / 2,
		BlockSize: blockSize,
	}
}

// GlassPixelW returns the glass width in pixels.
func (l Layout) GlassPixelW() int { return GlassW * l.BlockSize }

// GlassPixelH returns the glass height in pixels.
func (l Layout) GlassPixelH() int { return GlassH * l.BlockSize }

// Kick offsets tried, in order, when a rotated piece does not fit.
var kickOffsets = [...]int{-1, 1, -2, 2}

// Point is a glass coordinate.
type Point struct {
	Row, Col int
}

// Piece is the falling piece and the controller that moves it.
//
// The pixel position (x, y) of the bounding box is authoritative; the glass
// coordinates gx, gy are derived from it after every move. Every move is
// checked against the glass before it is applied.
type Piece struct {
	glass    *Glass
	layout   Layout
	wallKick bool

	shape   Shape
	items   *Matrix
	margins Margins
	x, y    int
	gx, gy  int
}

// NewPiece creates a controller operating on glass. wallKick enables
// horizontal repositioning when a rotation does not fit.
func NewPiece(glass *Glass, layout Layout, wallKick bool) *Piece {
	return &Piece{glass: glass, layout: layout, wallKick: wallKick}
}

// Spawn places shape, in its current catalog orientation, horizontally
// centered over the glass with its top row on the glass top edge.
func (p *Piece) Spawn(shape Shape, cat *Catalog) {
	p.shape = shape
	p.items = cat.Item(shape)
	p.x = p.layout.GlassX + (GlassW-ItemBlocks)/2*p.layout.BlockSize
	p.y = p.layout.GlassY
	p.sync()
	p.margins = ComputeMargins(p.items)
}

// sync derives glass coordinates from the pixel position.
func (p *Piece) sync() {
	p.gx = (p.x - p.layout.GlassX) / p.layout.BlockSize
	p.gy = (p.y - p.layout.GlassY) / p.layout.BlockSize
}

// Fits reports whether the piece overlaps neither a wall nor committed cells.
func (p *Piece) Fits() bool {
	return p.glass.Fits(p.items, p.gx, p.gy)
}

// TryMoveLeft shifts the piece one block left unless blocked.
func (p *Piece) TryMoveLeft() bool {
	if p.glass.BlockedLeft(&p.margins, p.gx, p.gy) {
		return false
	}
	p.x -= p.layout.BlockSize
	p.sync()
	return true
}

// TryMoveRight shifts the piece one block right unless blocked.
func (p *Piece) TryMoveRight() bool {
	if p.glass.BlockedRight(&p.margins, p.gx, p.gy) {
		return false
	}
	p.x += p.layout.BlockSize
	p.sync()
	return true
}

// Rotate turns the piece clockwise and recomputes its margins.
//
// A rotation that would leave a cell outside the glass or on a committed
// cell is undone, unless wall kick is enabled and one of the kick offsets
// makes it fit. Reports whether the orientation changed.
func (p *Piece) Rotate() bool {
	RotateClockwise(p.items)
	if p.glass.Fits(p.items, p.gx, p.gy) {
		p.margins = ComputeMargins(p.items)
		return true
	}

	if p.wallKick {
		for _, dx := range kickOffsets {
			if p.glass.Fits(p.items, p.gx+dx, p.gy) {
				p.x += dx * p.layout.BlockSize
				p.sync()
				p.margins = ComputeMargins(p.items)
				return true
			}
		}
	}

	// Three more turns restore the previous orientation.
	for i := 0; i < 3; i++ {
		RotateClockwise(p.items)
	}
	p.margins = ComputeMargins(p.items)
	return false
}

// StepDown moves the piece one row down. When the floor or a committed cell
// is directly below, the piece is committed to the glass instead and
// StepDown reports true.
func (p *Piece) StepDown() (landed bool) {
	if p.glass.BlockedBottom(&p.margins, p.gx, p.gy) {
		p.glass.Commit(p.items, p.gx, p.gy)
		return true
	}
	p.y += p.layout.BlockSize
	p.sync()
	return false
}

// Shape returns the piece shape.
func (p *Piece) Shape() Shape { return p.shape }

// GlassPos returns the bounding box top-left in glass coordinates.
func (p *Piece) GlassPos() (gx, gy int) { return p.gx, p.gy }

// PixelPos returns the bounding box top-left in window pixels.
func (p *Piece) PixelPos() (x, y int) { return p.x, p.y }

// Margins returns the margins of the current orientation.
func (p *Piece) Margins() Margins { return p.margins }

// Matrix returns a copy of the current orientation.
func (p *Piece) Matrix() Matrix { return *p.items }

// Cells returns the glass coordinates of every occupied cell.
func (p *Piece) Cells() []Point {
	cells := make([]Point, 0, ItemBlocks)
	for r := 0; r < ItemBlocks; r++ {
		for c := 0; c < ItemBlocks; c++ {
			if p.items.At(r, c) > 0 {
				cells = append(cells, Point{Row: p.gy + r, Col: p.gx + c})
			}
		}
	}
	return cells
}
