// Package window runs games in a native window using ebiten.
package window

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/pngshot"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Frontend is the name recorded in play history for window sessions.
const Frontend = "window"

// welcomePhase is the state name games report before play starts.
const welcomePhase = "GAME_WELCOME"

// bindings maps physical keys to actions. Several keys may share an action.
var bindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyW, core.ActionRotate},
	{ebiten.KeyArrowUp, core.ActionRotate},
	{ebiten.KeySpace, core.ActionConfirm},
	{ebiten.KeyQ, core.ActionQuit},
	{ebiten.KeyEscape, core.ActionQuit},
}

// snapshotKey saves the current frame as a PNG.
const snapshotKey = ebiten.KeyF12

// Options configures the window frontend.
type Options struct {
	Store       *storage.Store // nil disables history
	Logger      *log.Logger
	SnapshotDir string
	Seed        int64
}

// Runner is the ebiten.Game driving one registry game.
type Runner struct {
	game    registry.Game
	painter registry.Painter
	cfg     config.TetrisConfig
	rc      core.RuntimeConfig
	opts    Options
	logger  *log.Logger

	// pressed reports whether a key is held; ebiten.IsKeyPressed outside tests.
	pressed func(ebiten.Key) bool
	now     func() time.Time

	state        core.GameState
	snapshotHeld bool
	confirmHeld  bool
	// muteConfirm hides Confirm from the game until the key that
	// restarted it is released.
	muteConfirm  bool
	sessionStart time.Time
}

// NewRunner prepares game for the window described by cfg.
// The game must implement registry.Painter.
func NewRunner(game registry.Game, cfg config.TetrisConfig, opts Options) (*Runner, error) {
	p, ok := game.(registry.Painter)
	if !ok {
		return nil, fmt.Errorf("window: game %q cannot paint to a window", game.ID())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Runner{
		game:    game,
		painter: p,
		cfg:     cfg,
		rc: core.RuntimeConfig{
			ScreenW:  cfg.Window.Width,
			ScreenH:  cfg.Window.Height,
			TickRate: cfg.Timing.FPS,
			Seed:     seed,
		},
		opts:    opts,
		logger:  logger,
		pressed: ebiten.IsKeyPressed,
		now:     time.Now,
	}
	r.game.Reset(r.rc)
	r.state = r.game.State()
	return r, nil
}

// poll samples the held level of every bound key.
func (r *Runner) poll() core.InputFrame {
	in := core.NewInputFrame()
	for _, b := range bindings {
		if r.pressed(b.key) {
			in.Set(b.action)
		}
	}
	return in
}

// Update advances the game by one tick.
func (r *Runner) Update() error {
	in := r.poll()

	if in.Has(core.ActionQuit) {
		r.finishSession(false)
		return ebiten.Termination
	}

	snap := r.pressed(snapshotKey)
	if snap && !r.snapshotHeld {
		r.saveSnapshot()
	}
	r.snapshotHeld = snap

	confirm := in.Has(core.ActionConfirm)
	pressed := confirm && !r.confirmHeld
	r.confirmHeld = confirm

	if pressed && r.state.GameOver {
		r.rc.Seed = r.now().UnixNano()
		r.game.Reset(r.rc)
		r.state = r.game.State()
		r.muteConfirm = true
		return nil
	}
	if r.muteConfirm {
		if confirm {
			delete(in.Actions, core.ActionConfirm)
		} else {
			r.muteConfirm = false
		}
	}

	r.state = r.game.Step(in).State
	if r.sessionStart.IsZero() && !r.state.GameOver && r.state.Phase != welcomePhase {
		r.sessionStart = r.now()
	}
	if r.state.GameOver {
		r.finishSession(true)
	}
	return nil
}

// Draw paints the game onto the window.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.painter.Paint(canvas{dst: screen})
}

// Layout fixes the logical screen to the configured window size.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.cfg.Window.Width, r.cfg.Window.Height
}

// State returns the game state seen on the last tick.
func (r *Runner) State() core.GameState {
	return r.state
}

func (r *Runner) finishSession(finished bool) {
	if r.sessionStart.IsZero() {
		return
	}
	sess := storage.Session{
		GameID:    r.game.ID(),
		Frontend:  Frontend,
		StartedAt: r.sessionStart,
		EndedAt:   r.now(),
		Pieces:    r.state.Pieces,
		Rows:      r.state.Rows,
		Finished:  finished,
	}
	r.sessionStart = time.Time{}

	r.logger.Info("session ended", "game", sess.GameID, "pieces", sess.Pieces, "rows", sess.Rows, "finished", finished)
	if r.opts.Store == nil {
		return
	}
	if _, err := r.opts.Store.SaveSession(sess); err != nil {
		r.logger.Warn("could not save session", "err", err)
	}
}

func (r *Runner) saveSnapshot() {
	if r.opts.SnapshotDir == "" {
		return
	}
	path := pngshot.Path(r.opts.SnapshotDir, r.game.ID(), r.now())
	if err := pngshot.Save(r.painter, r.cfg.Window.Width, r.cfg.Window.Height, path); err != nil {
		r.logger.Warn("snapshot failed", "err", err)
		return
	}
	r.logger.Info("snapshot saved", "path", path)
}

// configure applies window geometry from cfg.
func configure(cfg config.TetrisConfig) {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Timing.FPS)
	if cfg.Window.X >= 0 && cfg.Window.Y >= 0 {
		ebiten.SetWindowPosition(cfg.Window.X, cfg.Window.Y)
	}
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
}

// Run opens the window and blocks until it is closed.
func Run(game registry.Game, cfg config.TetrisConfig, opts Options) error {
	r, err := NewRunner(game, cfg, opts)
	if err != nil {
		return err
	}
	configure(cfg)

	err = ebiten.RunGame(r)
	// Closing the window skips Update's quit path.
	r.finishSession(false)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
