package tetris

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

const frameMs = 16 // 1000/60

type harness struct {
	t     *testing.T
	g     *Game
	clock *core.ManualClock
}

func newHarness(t *testing.T, mutate func(*config.TetrisConfig), opts ...Option) *harness {
	t.Helper()
	cfg := config.DefaultTetrisConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	clock := core.NewManualClock(0)
	opts = append([]Option{WithConfig(cfg), WithClock(clock)}, opts...)
	g := New(opts...)
	g.Reset(core.RuntimeConfig{Seed: 42, ScreenW: 80, ScreenH: 40})
	return &harness{t: t, g: g, clock: clock}
}

// frame advances one frame interval and steps with the given actions held.
func (h *harness) frame(actions ...core.Action) core.StepResult {
	h.clock.Advance(frameMs)
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return h.g.Step(in)
}

// press holds an action for one frame and releases it on the next.
func (h *harness) press(a core.Action) {
	h.frame(a)
	h.frame()
}

// until steps idle frames until cond holds, failing after limit frames.
func (h *harness) until(limit int, cond func() bool) {
	h.t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		h.frame()
	}
	require.True(h.t, cond(), "condition not reached after %d frames", limit)
}

func (h *harness) start() {
	h.t.Helper()
	h.frame(core.ActionConfirm)
	h.frame()
	require.Equal(h.t, PhaseItemFalling, h.g.Phase())
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, PhaseWelcome, h.g.Phase())
	assert.Nil(t, h.g.View().Piece)
	assert.Equal(t, "GAME_WELCOME", h.g.State().Phase)
	assert.False(t, h.g.State().GameOver)
}

func TestFrameGate(t *testing.T) {
	h := newHarness(t, nil)

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	res := h.g.Step(in)
	assert.False(t, res.Frame, "no frame before the frame interval elapsed")
	assert.Equal(t, PhaseWelcome, h.g.Phase())

	// The edge latched above is applied on the next frame.
	res = h.frame()
	assert.True(t, res.Frame)
	assert.Equal(t, PhaseItemFalling, h.g.Phase())
}

func TestConfirmStartsGame(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(core.ActionConfirm)

	assert.Equal(t, PhaseItemFalling, h.g.Phase(), "start must not also trigger a fast drop")
	require.NotNil(t, h.g.piece)
	gx, gy := h.g.piece.GlassPos()
	assert.Equal(t, 5, gx)
	assert.Equal(t, 0, gy)
	pieces, rows := h.g.Stats()
	assert.Equal(t, 1, pieces)
	assert.Equal(t, 0, rows)
}

func TestHeldKeyIsEdgeTriggered(t *testing.T) {
	h := newHarness(t, nil)
	h.start()

	gx0, _ := h.g.piece.GlassPos()
	for i := 0; i < 5; i++ {
		h.frame(core.ActionLeft)
	}
	gx, _ := h.g.piece.GlassPos()
	assert.Equal(t, gx0-1, gx, "holding left moves one column")
}

func TestConfirmSwitchesToFastFall(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	_, gy0 := h.g.piece.GlassPos()

	h.frame(core.ActionConfirm)
	assert.Equal(t, PhaseItemFallingFast, h.g.Phase())
	_, gy := h.g.piece.GlassPos()
	assert.Equal(t, gy0, gy, "switching to fast fall keeps the position")
}

func TestSlowFallFollowsTimer(t *testing.T) {
	h := newHarness(t, nil)
	h.start() // clock at 32

	// The slow timer started at 0 and first fires on the frame at 1008.
	for h.clock.Millis() < 992 {
		h.frame()
	}
	_, gy := h.g.piece.GlassPos()
	require.Equal(t, 0, gy)

	h.frame()
	_, gy = h.g.piece.GlassPos()
	assert.Equal(t, 1, gy)
}

func TestMoveAppliedBeforeFall(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	for h.clock.Millis() < 992 {
		h.frame()
	}
	gx0, _ := h.g.piece.GlassPos()

	h.frame(core.ActionLeft) // slow timer fires on this frame
	gx, gy := h.g.piece.GlassPos()
	assert.Equal(t, gx0-1, gx)
	assert.Equal(t, 1, gy)
}

func TestFastDropLandsAndSpawnsNext(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	h.frame(core.ActionConfirm)

	h.until(2000, func() bool { return h.g.Phase() == PhaseItemStopped })
	assert.Equal(t, 4, h.g.glass.Filled())
	assert.Nil(t, h.g.View().Piece, "landed piece is part of the glass")

	h.until(100, func() bool { return h.g.Phase() == PhaseItemFalling })
	pieces, _ := h.g.Stats()
	assert.Equal(t, 2, pieces)
	_, gy := h.g.piece.GlassPos()
	assert.Equal(t, 0, gy)
}

func TestRowClearedAfterLanding(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	fillRow(h.g.glass, GlassH-1, 1)
	h.frame(core.ActionConfirm)

	h.until(2000, func() bool { return h.g.Phase() == PhaseItemStopped })
	require.Equal(t, GlassW+4, h.g.glass.Filled())

	h.until(100, func() bool { return h.g.Phase() == PhaseItemFalling })
	_, rows := h.g.Stats()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 4, h.g.glass.Filled())
	assert.Equal(t, 1, h.g.State().Rows)
}

func TestBlockedSpawnFinishesGame(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	h.frame(core.ActionConfirm)
	h.until(2000, func() bool { return h.g.Phase() == PhaseItemStopped })

	for r := 0; r < ItemBlocks; r++ {
		for c := 5; c < 9; c++ {
			h.g.glass.SetCell(r, c, 2)
		}
	}

	h.until(100, func() bool { return h.g.Phase() != PhaseItemStopped })
	assert.Equal(t, PhaseFinished, h.g.Phase())
	assert.True(t, h.g.State().GameOver)
	assert.Nil(t, h.g.piece)
	assert.Nil(t, h.g.View().Piece)

	// Finished ignores input.
	h.press(core.ActionConfirm)
	assert.Equal(t, PhaseFinished, h.g.Phase())

	h.g.Reset(core.RuntimeConfig{Seed: 7})
	assert.Equal(t, PhaseWelcome, h.g.Phase())
	assert.Zero(t, h.g.glass.Filled())
}

func TestBlockedSpawnRuleDisabled(t *testing.T) {
	h := newHarness(t, func(c *config.TetrisConfig) {
		c.Rules.GameOverOnBlockedSpawn = false
	})
	h.start()
	h.frame(core.ActionConfirm)
	h.until(2000, func() bool { return h.g.Phase() == PhaseItemStopped })

	for r := 0; r < ItemBlocks; r++ {
		for c := 5; c < 9; c++ {
			h.g.glass.SetCell(r, c, 2)
		}
	}

	h.until(100, func() bool { return h.g.Phase() != PhaseItemStopped })
	assert.Equal(t, PhaseItemFalling, h.g.Phase())
}

func TestSpawnDelay(t *testing.T) {
	h := newHarness(t, func(c *config.TetrisConfig) {
		c.Timing.SpawnDelayMs = 500
	})
	h.frame(core.ActionConfirm)

	assert.Equal(t, PhaseItemStarted, h.g.Phase())
	assert.NotNil(t, h.g.View().Piece, "spawned piece is shown during the delay")

	h.until(40, func() bool { return h.g.Phase() == PhaseItemFalling })
	assert.GreaterOrEqual(t, h.clock.Millis(), int64(500))
}

func TestRotateInput(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	before := h.g.piece.Matrix()

	h.frame(core.ActionRotate)
	after := h.g.piece.Matrix()
	RotateClockwise(&before)
	assert.Equal(t, before, after)
}

func TestWallKickVariant(t *testing.T) {
	g := NewWallKick()
	assert.Equal(t, "tetris_kick", g.ID())
	assert.Equal(t, "Tetris (Wall Kick)", g.Title())
	assert.True(t, g.WallKick())

	c := New()
	assert.Equal(t, "tetris", c.ID())
	assert.False(t, c.WallKick())

	cfg := config.DefaultTetrisConfig()
	cfg.Rules.WallKick = true
	assert.True(t, New(WithConfig(cfg)).WallKick())
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_kick"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		_, ok := g.(registry.Painter)
		assert.True(t, ok, "%s must paint to pixel canvases", id)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		h := newHarness(t, nil)
		h.frame(core.ActionConfirm)
		script := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionRight, core.ActionConfirm}
		for i := 0; i < 3000; i++ {
			if i%50 == 0 {
				h.frame(script[(i/50)%len(script)])
				continue
			}
			h.frame()
		}
		return h.g.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Greater(t, a.Pieces, 1)
}

func TestRenderWelcome(t *testing.T) {
	h := newHarness(t, nil)
	scr := core.NewScreen(80, 40)
	h.g.Render(scr)

	out := scr.String()
	assert.Contains(t, out, "TETRIS")
	assert.Contains(t, out, "Press SPACE to start")
}

func TestRenderFallingPiece(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	scr := core.NewScreen(MinScreenW, MinScreenH)
	h.g.Render(scr)

	assert.Equal(t, 8, strings.Count(scr.String(), string(blockGlyph)), "4 blocks, 2 columns each")
	assert.Contains(t, scr.String(), "Pieces: 1  Rows: 0")
}

func TestRenderTooSmall(t *testing.T) {
	h := newHarness(t, nil)
	scr := core.NewScreen(MinScreenW-1, MinScreenH)
	h.g.Render(scr)

	assert.Contains(t, scr.String(), "Terminal too small")
}

type recordingCanvas struct {
	w, h  int
	rects []core.Rect
	texts []string
}

func (c *recordingCanvas) Size() (int, int) { return c.w, c.h }

func (c *recordingCanvas) FillRect(r core.Rect, _ color.Color) { c.rects = append(c.rects, r) }

func (c *recordingCanvas) Text(_, _ int, s string) { c.texts = append(c.texts, s) }

func TestPaint(t *testing.T) {
	h := newHarness(t, nil)

	cv := &recordingCanvas{w: 1200, h: 800}
	h.g.Paint(cv)
	assert.Len(t, cv.rects, 2, "background and glass")
	assert.Equal(t, []string{"TETRIS", "Press SPACE to start"}, cv.texts)

	h.start()
	cv = &recordingCanvas{w: 1200, h: 800}
	h.g.Paint(cv)
	require.Len(t, cv.rects, 6)
	assert.Empty(t, cv.texts)
	for _, r := range cv.rects[2:] {
		assert.Equal(t, 25, r.W)
		assert.True(t, core.NewRect(425, 50, 350, 700).Contains(r.X, r.Y))
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "ITEM_FALLING_FAST", PhaseItemFallingFast.String())
	assert.Equal(t, "GAME_FINISHED", PhaseFinished.String())
	assert.True(t, PhaseItemStopped.HasPiece())
	assert.False(t, PhaseFinished.HasPiece())
}
