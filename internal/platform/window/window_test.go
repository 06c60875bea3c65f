package window

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type testRunner struct {
	*Runner
	clock *core.ManualClock
	held  map[ebiten.Key]bool
}

func newTestRunner(t *testing.T, opts Options) *testRunner {
	t.Helper()
	cfg := config.DefaultTetrisConfig()
	clock := core.NewManualClock(0)
	g := tetris.New(tetris.WithConfig(cfg), tetris.WithClock(clock))

	opts.Seed = 7
	r, err := NewRunner(g, cfg, opts)
	require.NoError(t, err)

	tr := &testRunner{Runner: r, clock: clock, held: map[ebiten.Key]bool{}}
	r.pressed = func(k ebiten.Key) bool { return tr.held[k] }
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return start.Add(time.Duration(clock.Millis()) * time.Millisecond) }
	return tr
}

// tick advances one frame with keys held and runs Update.
func (tr *testRunner) tick(keys ...ebiten.Key) error {
	tr.held = map[ebiten.Key]bool{}
	for _, k := range keys {
		tr.held[k] = true
	}
	tr.clock.Advance(16)
	return tr.Update()
}

type blindGame struct{}

func (blindGame) ID() string                           { return "blind" }
func (blindGame) Title() string                        { return "Blind" }
func (blindGame) Reset(core.RuntimeConfig)             {}
func (blindGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (blindGame) Render(*core.Screen)                  {}
func (blindGame) State() core.GameState                { return core.GameState{} }

func TestNewRunnerRequiresPainter(t *testing.T) {
	_, err := NewRunner(blindGame{}, config.DefaultTetrisConfig(), Options{})
	assert.Error(t, err)
}

func TestLayoutUsesWindowSize(t *testing.T) {
	tr := newTestRunner(t, Options{})
	w, h := tr.Layout(640, 480)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 800, h)
}

func TestPollMapsKeys(t *testing.T) {
	tr := newTestRunner(t, Options{})
	tr.held = map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyW: true}
	in := tr.poll()
	assert.True(t, in.Has(core.ActionLeft))
	assert.True(t, in.Has(core.ActionRotate))
	assert.False(t, in.Has(core.ActionRight))
	assert.False(t, in.Has(core.ActionConfirm))
}

func TestSpaceStartsGame(t *testing.T) {
	tr := newTestRunner(t, Options{})
	assert.Equal(t, "GAME_WELCOME", tr.State().Phase)

	require.NoError(t, tr.tick(ebiten.KeySpace))
	require.NoError(t, tr.tick())
	assert.NotEqual(t, "GAME_WELCOME", tr.State().Phase)
	assert.Equal(t, 1, tr.State().Pieces)
}

func TestQuitTerminatesAndRecordsSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	tr := newTestRunner(t, Options{Store: store})
	require.NoError(t, tr.tick(ebiten.KeySpace))
	require.NoError(t, tr.tick())

	assert.ErrorIs(t, tr.tick(ebiten.KeyEscape), ebiten.Termination)

	sessions, err := store.RecentSessions("tetris", 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, Frontend, sessions[0].Frontend)
	assert.False(t, sessions[0].Finished)
	assert.Equal(t, 1, sessions[0].Pieces)
}

func TestSnapshotOncePerPress(t *testing.T) {
	dir := t.TempDir()
	tr := newTestRunner(t, Options{SnapshotDir: dir})

	require.NoError(t, tr.tick(snapshotKey))
	tr.clock.Advance(2000) // a held key must not save a second file
	require.NoError(t, tr.tick(snapshotKey))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRestartWaitsForConfirmRelease(t *testing.T) {
	tr := newTestRunner(t, Options{})
	tr.state = core.GameState{Phase: "GAME_FINISHED", GameOver: true}

	require.NoError(t, tr.tick(ebiten.KeySpace))
	assert.Equal(t, "GAME_WELCOME", tr.State().Phase)

	// Still held: the welcome screen stays up.
	require.NoError(t, tr.tick(ebiten.KeySpace))
	require.NoError(t, tr.tick(ebiten.KeySpace))
	assert.Equal(t, "GAME_WELCOME", tr.State().Phase)

	require.NoError(t, tr.tick())
	require.NoError(t, tr.tick(ebiten.KeySpace))
	assert.NotEqual(t, "GAME_WELCOME", tr.State().Phase)
}
