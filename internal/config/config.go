// Package config provides configuration for shakmat.
//
// The configuration file is stored at ~/.shakmat/config.toml and uses TOML
// format with separate [display] and [engine] sections. Loading never
// fails: a missing or unparsable file yields the defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the resolved configuration.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Engine  EngineConfig  `toml:"engine"`
}

// DisplayConfig controls how the REPL renders the board.
type DisplayConfig struct {
	// UseUnicode selects Unicode chess pieces (♔♕) over ASCII letters.
	UseUnicode bool `toml:"use_unicode"`
	// ShowCoords shows the a-h and 1-8 legends around the board.
	ShowCoords bool `toml:"show_coordinates"`
	// UseColors colors the pieces and squares when the terminal allows.
	UseColors bool `toml:"use_colors"`
}

// EngineConfig tunes the search and the draw rules.
type EngineConfig struct {
	// PonderSeconds is the default search budget.
	PonderSeconds float64 `toml:"ponder_seconds"`
	// FiftyMoveThreshold is the halfmove clock at which the fifty-move
	// draw fires. Standard chess uses 100 halfmoves; the engine's own
	// convention defaults to 50.
	FiftyMoveThreshold int `toml:"fifty_move_threshold"`
	// TableGenerations is the transposition-table ring size.
	TableGenerations int `toml:"table_generations"`
	// NullReduction is the null-move pruning depth reduction.
	NullReduction int `toml:"null_reduction"`
}

// DefaultConfig returns the defaults: ASCII pieces for maximum
// compatibility, coordinates and colors on, a 10 second ponder budget,
// and the engine's short fifty-move convention.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			UseUnicode: false,
			ShowCoords: true,
			UseColors:  true,
		},
		Engine: EngineConfig{
			PonderSeconds:      10,
			FiftyMoveThreshold: 50,
			TableGenerations:   4,
			NullReduction:      3,
		},
	}
}

// LoadConfig reads ~/.shakmat/config.toml. If the file doesn't exist or
// cannot be parsed, it returns the default configuration; this function
// never fails.
func LoadConfig() Config {
	path, err := configFilePath()
	if err != nil {
		return DefaultConfig()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig()
	}
	return normalize(cfg)
}

// normalize clamps nonsensical values back to their defaults.
func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Engine.PonderSeconds <= 0 {
		cfg.Engine.PonderSeconds = def.Engine.PonderSeconds
	}
	if cfg.Engine.FiftyMoveThreshold <= 0 {
		cfg.Engine.FiftyMoveThreshold = def.Engine.FiftyMoveThreshold
	}
	if cfg.Engine.TableGenerations < 1 {
		cfg.Engine.TableGenerations = def.Engine.TableGenerations
	}
	if cfg.Engine.NullReduction < 1 {
		cfg.Engine.NullReduction = def.Engine.NullReduction
	}
	return cfg
}

// SaveConfig writes the configuration to ~/.shakmat/config.toml, creating
// the directory if needed.
func SaveConfig(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}
	return nil
}
