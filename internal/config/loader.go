package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Glass size in blocks, mirrored here so Validate can check the window
// without importing the game package.
const (
	glassBlocksW = 14
	glassBlocksH = 28
)

// LoadTetris loads tetris configuration.
// Search order: customPath -> ~/.tetris/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Values start from DefaultTetrisConfig, so a file that sets only some keys
// keeps the defaults for the rest.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultTetrisConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tetris.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultTetrisConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", filename)
}

// ApplyEnv loads envFile (".env" when empty) into the process environment
// and applies TETRIS_* overrides to cfg. A missing env file is not an error.
func ApplyEnv(cfg *TetrisConfig, envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: failed to load %s: %w", envFile, err)
	}

	cfg.Timing.FPS = getEnvAsInt("TETRIS_FPS", cfg.Timing.FPS)
	cfg.Timing.SlowFallMs = getEnvAsInt("TETRIS_SLOW_FALL_MS", cfg.Timing.SlowFallMs)
	cfg.Timing.FastFallMs = getEnvAsInt("TETRIS_FAST_FALL_MS", cfg.Timing.FastFallMs)
	cfg.Glass.BlockSize = getEnvAsInt("TETRIS_BLOCK_SIZE", cfg.Glass.BlockSize)
	cfg.Rules.WallKick = getEnvAsBool("TETRIS_WALL_KICK", cfg.Rules.WallKick)
	cfg.Window.Width = getEnvAsInt("TETRIS_WINDOW_WIDTH", cfg.Window.Width)
	cfg.Window.Height = getEnvAsInt("TETRIS_WINDOW_HEIGHT", cfg.Window.Height)
	cfg.Window.Fullscreen = getEnvAsBool("TETRIS_FULLSCREEN", cfg.Window.Fullscreen)
	return nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	if c.Timing.FPS <= 0 || c.Timing.FPS > 1000 {
		return fmt.Errorf("config: fps must be in 1..1000, got %d", c.Timing.FPS)
	}
	if c.Timing.SlowFallMs <= 0 {
		return fmt.Errorf("config: slow_fall_ms must be positive, got %d", c.Timing.SlowFallMs)
	}
	if c.Timing.FastFallMs <= 0 {
		return fmt.Errorf("config: fast_fall_ms must be positive, got %d", c.Timing.FastFallMs)
	}
	if c.Timing.SpawnDelayMs < 0 {
		return fmt.Errorf("config: spawn_delay_ms must not be negative, got %d", c.Timing.SpawnDelayMs)
	}
	if c.Glass.BlockSize <= 0 {
		return fmt.Errorf("config: block_size must be positive, got %d", c.Glass.BlockSize)
	}
	needW, needH := glassBlocksW*c.Glass.BlockSize, glassBlocksH*c.Glass.BlockSize
	if c.Window.Width < needW || c.Window.Height < needH {
		return fmt.Errorf("config: window %dx%d cannot hold a %dx%d glass",
			c.Window.Width, c.Window.Height, needW, needH)
	}
	return nil
}
