package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Seed    int64
	Phase   Phase
	Shape   Shape
	GX      int
	GY      int
	Pieces  int
	Rows    int
	Filled  int
	HasItem bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		Phase:  g.phase,
		Pieces: g.pieces,
		Rows:   g.rows,
		Filled: g.glass.Filled(),
	}
	if g.piece != nil {
		s.HasItem = true
		s.Shape = g.piece.Shape()
		s.GX, s.GY = g.piece.GlassPos()
	}
	return s
}
