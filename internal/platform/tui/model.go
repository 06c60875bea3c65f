package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/pngshot"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Frontend is the name recorded in play history for terminal sessions.
const Frontend = "terminal"

// Options configures the terminal frontend.
type Options struct {
	Store  *storage.Store // nil disables history
	Logger *log.Logger

	// SnapshotDir receives PNG snapshots; CanvasW x CanvasH is their size.
	SnapshotDir string
	CanvasW     int
	CanvasH     int
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	quitting   bool

	// The session runs from the first frame outside the welcome phase to
	// game over or quit.
	sessionStart time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
// Terminals report presses only, so a key is held for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishSession(false)
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Snapshot):
		m.saveSnapshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyBoard()
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize processes terminal resize events. The game keeps running;
// it only needs the new size for rendering.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Restart after game over
	if m.inputFrame.Has(core.ActionConfirm) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.status = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.sessionStart.IsZero() && !m.gameState.GameOver && m.gameState.Phase != welcomePhase {
		m.sessionStart = time.Now()
	}
	if m.gameState.GameOver {
		m.finishSession(true)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// welcomePhase is the state name games report before play starts.
const welcomePhase = "GAME_WELCOME"

// finishSession records the running session, if any, in play history.
func (m *Model) finishSession(finished bool) {
	if m.sessionStart.IsZero() {
		return
	}
	sess := storage.Session{
		GameID:    m.game.ID(),
		Frontend:  Frontend,
		StartedAt: m.sessionStart,
		EndedAt:   time.Now(),
		Pieces:    m.gameState.Pieces,
		Rows:      m.gameState.Rows,
		Finished:  finished,
	}
	m.sessionStart = time.Time{}

	m.logger.Info("session ended", "game", sess.GameID, "pieces", sess.Pieces, "rows", sess.Rows, "finished", finished)
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveSession(sess); err != nil {
		m.logger.Warn("could not save session", "err", err)
	}
}

// saveSnapshot writes the current frame as a PNG.
func (m *Model) saveSnapshot() {
	p, ok := m.game.(registry.Painter)
	if !ok || m.opts.SnapshotDir == "" {
		m.status = "snapshots unavailable"
		return
	}
	path := pngshot.Path(m.opts.SnapshotDir, m.game.ID(), time.Now())
	if err := pngshot.Save(p, m.opts.CanvasW, m.opts.CanvasH, path); err != nil {
		m.logger.Warn("snapshot failed", "err", err)
		m.status = "snapshot failed"
		return
	}
	m.logger.Info("snapshot saved", "path", path)
	m.status = "saved " + filepath.Base(path)
}

// copyBoard puts the current screen, as plain text, on the clipboard.
func (m *Model) copyBoard() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		m.status = "clipboard unavailable"
		return
	}
	m.status = "board copied"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = fmt.Sprintf("%s  %s", m.status, footer)
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	// A program killed by signal never saw the quit key.
	if m, ok := final.(Model); ok {
		m.finishSession(false)
	}
	return nil
}
