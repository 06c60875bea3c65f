package tetris

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Package-level defaults applied to games created by the registry.
var (
	defaultConfig = config.DefaultTetrisConfig()
	defaultLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by registry-created games.
func SetConfig(cfg config.TetrisConfig) {
	defaultConfig = cfg
}

// SetLogger sets the logger used by registry-created games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_kick", func() registry.Game {
		return NewWallKick()
	})
}

// Option configures a Game.
type Option func(*Game)

// WithConfig overrides the package default configuration.
func WithConfig(cfg config.TetrisConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithLogger sets the logger for phase transitions and piece events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock sets the millisecond clock driving the timers.
func WithClock(c core.Clock) Option {
	return func(g *Game) {
		if c != nil {
			g.clock = c
		}
	}
}

// Game is one tetris session: glass, catalog, falling piece, timers and the
// phase state machine. It is driven by Step from a single goroutine.
type Game struct {
	kick   bool
	cfg    config.TetrisConfig
	logger *log.Logger
	clock  core.Clock
	rng    *rand.Rand
	seed   int64

	phase   Phase
	glass   *Glass
	catalog *Catalog
	piece   *Piece
	layout  Layout

	edges *core.EdgeDetector
	frame *core.Timer // frame pacing
	slow  *core.Timer // normal fall
	fast  *core.Timer // soft drop and row clearing
	dwell *core.Timer // spawn pause

	tick    uint64
	pieces  int
	rows    int
	screenW int
	screenH int
}

// New creates a game with the configured rotation rules.
func New(opts ...Option) *Game {
	return newGame(false, opts)
}

// NewWallKick creates a game whose rotations are repositioned sideways when
// they would otherwise hit a wall or committed blocks.
func NewWallKick(opts ...Option) *Game {
	return newGame(true, opts)
}

func newGame(kick bool, opts []Option) *Game {
	g := &Game{
		kick:   kick,
		cfg:    defaultConfig,
		logger: defaultLogger,
		clock:  core.NewSystemClock(),
		edges:  core.NewEdgeDetector(),
		glass:  NewGlass(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.kick {
		return "tetris_kick"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.kick {
		return "Tetris (Wall Kick)"
	}
	return "Tetris"
}

// WallKick reports whether rotations may be repositioned.
func (g *Game) WallKick() bool {
	return g.kick || g.cfg.Rules.WallKick
}

// Reset starts a new session in the welcome phase.
// The catalog is recreated, so every shape returns to its initial
// orientation.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.layout = NewLayout(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Glass.BlockSize)
	g.glass.Clear()
	g.catalog = NewCatalog()
	g.piece = nil
	g.edges.Reset()

	timing := g.cfg.Timing
	g.frame = core.NewTimer(g.clock, timing.FrameMs())
	g.slow = core.NewTimer(g.clock, int64(timing.SlowFallMs))
	g.fast = core.NewTimer(g.clock, int64(timing.FastFallMs))
	g.dwell = core.NewTimer(g.clock, int64(timing.SpawnDelayMs))

	g.tick = 0
	g.pieces = 0
	g.rows = 0
	g.setPhase(PhaseWelcome)
}

// Resize records new platform screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step samples input and, when the frame timer has fired, advances the
// state machine by one frame.
//
// Within a frame, movement input is applied first, then the slow and fast
// fall timers, then the phase entry actions. Every timer that fired is
// restarted from the current time, whatever the phase.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.edges.Update(in)
	if !g.frame.IsTick() {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.handleInput(g.edges.Consume())

	if g.slow.IsTick() {
		if g.phase == PhaseItemFalling {
			g.fall()
		}
		g.slow.Finish()
	}

	if g.fast.IsTick() {
		switch g.phase {
		case PhaseItemFallingFast:
			g.fall()
		case PhaseItemStopped:
			g.clearRow()
		}
		g.fast.Finish()
	}

	g.enterPhase()

	g.frame.Finish()
	return core.StepResult{State: g.State(), Frame: true}
}

// handleInput applies press edges for the phase the frame started in.
func (g *Game) handleInput(e core.Edges) {
	switch g.phase {
	case PhaseWelcome:
		if e.Pressed(core.ActionConfirm) {
			g.setPhase(PhaseStarted)
		}
	case PhaseItemFalling, PhaseItemFallingFast:
		if e.Pressed(core.ActionLeft) {
			g.piece.TryMoveLeft()
		}
		if e.Pressed(core.ActionRight) {
			g.piece.TryMoveRight()
		}
		if e.Pressed(core.ActionRotate) && !g.piece.Rotate() {
			g.logger.Debug("rotation rejected", "shape", g.piece.Shape())
		}
		if e.Pressed(core.ActionConfirm) && g.phase == PhaseItemFalling {
			g.setPhase(PhaseItemFallingFast)
		}
	}
}

// enterPhase runs the actions of phases that advance without a timer.
func (g *Game) enterPhase() {
	if g.phase == PhaseStarted {
		g.glass.Clear()
		g.setPhase(PhaseItemStarted)
	}

	if g.phase != PhaseItemStarted {
		return
	}

	if g.piece == nil {
		g.spawn()
		if g.phase == PhaseFinished {
			return
		}
		g.dwell.Start()
	}
	if g.dwell.IsTick() {
		g.setPhase(PhaseItemFalling)
	}
}

func (g *Game) spawn() {
	shape := Shape(g.rng.Intn(ShapeCount))
	g.piece = NewPiece(g.glass, g.layout, g.WallKick())
	g.piece.Spawn(shape, g.catalog)
	g.pieces++

	gx, gy := g.piece.GlassPos()
	g.logger.Debug("piece spawned", "shape", shape, "gx", gx, "gy", gy)

	if g.cfg.Rules.GameOverOnBlockedSpawn && !g.piece.Fits() {
		g.logger.Debug("spawn blocked", "shape", shape, "pieces", g.pieces, "rows", g.rows)
		g.piece = nil
		g.setPhase(PhaseFinished)
	}
}

func (g *Game) fall() {
	if !g.piece.StepDown() {
		return
	}
	gx, gy := g.piece.GlassPos()
	g.logger.Debug("piece landed", "shape", g.piece.Shape(), "gx", gx, "gy", gy)
	g.setPhase(PhaseItemStopped)
}

func (g *Game) clearRow() {
	if g.glass.DetectAndClearFullRow() {
		g.rows++
		g.logger.Debug("row removed", "rows", g.rows)
		return
	}
	g.piece = nil
	g.setPhase(PhaseItemStarted)
}

func (g *Game) setPhase(p Phase) {
	if g.phase != p {
		g.logger.Debug("phase", "from", g.phase, "to", p)
	}
	g.phase = p
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.phase.String(),
		GameOver: g.phase == PhaseFinished,
		Pieces:   g.pieces,
		Rows:     g.rows,
	}
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Stats returns the number of pieces spawned and rows removed.
func (g *Game) Stats() (pieces, rows int) {
	return g.pieces, g.rows
}

// Layout returns the glass placement in window pixels.
func (g *Game) Layout() Layout {
	return g.layout
}
