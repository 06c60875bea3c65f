// Package config provides YAML-based configuration loading for the tetris
// game, with optional overrides from a .env file and the environment.
package config

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Window WindowConfig `yaml:"window"`
	Glass  GlassConfig  `yaml:"glass"`
	Timing TimingConfig `yaml:"timing"`
	Rules  RulesConfig  `yaml:"rules"`
}

// WindowConfig defines the pixel window geometry.
// The glass is centered in Width x Height; X and Y place the window on the
// monitor, -1 meaning centered.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
}

// GlassConfig defines the glass pixel sizing.
type GlassConfig struct {
	BlockSize int `yaml:"block_size"`
}

// TimingConfig defines the frame rate and timer intervals in milliseconds.
type TimingConfig struct {
	FPS          int `yaml:"fps"`
	SlowFallMs   int `yaml:"slow_fall_ms"`
	FastFallMs   int `yaml:"fast_fall_ms"`
	SpawnDelayMs int `yaml:"spawn_delay_ms"`
}

// RulesConfig toggles rule variations.
type RulesConfig struct {
	WallKick               bool `yaml:"wall_kick"`
	GameOverOnBlockedSpawn bool `yaml:"game_over_on_blocked_spawn"`
}

// FrameMs returns the frame interval derived from FPS.
func (t TimingConfig) FrameMs() int64 {
	if t.FPS <= 0 {
		return 0
	}
	return int64(1000 / t.FPS)
}
