package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Window: WindowConfig{
			Width:  1200,
			Height: 800,
			X:      -1,
			Y:      -1,
			Title:  "TETRIS",
		},
		Glass: GlassConfig{
			BlockSize: 25,
		},
		Timing: TimingConfig{
			FPS:        60,
			SlowFallMs: 1000,
			FastFallMs: 75,
		},
		Rules: RulesConfig{
			WallKick:               false,
			GameOverOnBlockedSpawn: true,
		},
	}
}
