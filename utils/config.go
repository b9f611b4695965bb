package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the configuration for the game
type Config struct {
	SaveFile      string        `json:"save_file" env:"GOL_SAVE_FILE"`
	Backend       string        `json:"backend" env:"GOL_BACKEND"`
	SQLitePath    string        `json:"sqlite_path" env:"GOL_SQLITE_PATH"`
	SnapshotName  string        `json:"snapshot_name" env:"GOL_SNAPSHOT"`
	PatternFile   string        `json:"pattern_file" env:"GOL_PATTERN_FILE"`
	InitialSpeed  float64       `json:"initial_speed" env:"GOL_SPEED"`
	TickDelay     time.Duration `json:"tick_delay" env:"GOL_TICK_DELAY"`
	FramePause    time.Duration `json:"frame_pause" env:"GOL_FRAME_PAUSE"`
	UseParallel   bool          `json:"use_parallel" env:"GOL_PARALLEL"`
	UseMemoryPool bool          `json:"use_memory_pool" env:"GOL_MEMORY_POOL"`
	RandomDensity float64       `json:"random_density" env:"GOL_RANDOM_DENSITY"`
	StrictLoad    bool          `json:"strict_load" env:"GOL_STRICT_LOAD"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		SaveFile:      "board.txt",
		Backend:       BackendFile,
		SQLitePath:    "gol.db",
		SnapshotName:  "default",
		InitialSpeed:  1,
		TickDelay:     500 * time.Millisecond,
		FramePause:    100 * time.Millisecond,
		UseParallel:   true,
		UseMemoryPool: true,
	}
}

// LoadConfig loads configuration from a JSON file, then applies environment
// overrides. The returned config is usable even when the file is missing.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return withEnv(config), errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return withEnv(config), errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = env.Parse(&config); err != nil {
		return config, errors.Wrap(err, "[LoadConfig] failed to parse environment")
	}
	return config, nil
}

// withEnv applies environment overrides, ignoring malformed values
func withEnv(config Config) Config {
	overridden := config
	if err := env.Parse(&overridden); err != nil {
		return config
	}
	return overridden
}

// Validate rejects settings the game loop cannot run with
func (c Config) Validate() error {
	switch {
	case c.InitialSpeed <= 0:
		return errors.Errorf("[Validate] initial_speed must be positive, got %v", c.InitialSpeed)
	case c.TickDelay <= 0:
		return errors.Errorf("[Validate] tick_delay must be positive, got %v", c.TickDelay)
	case c.FramePause <= 0:
		return errors.Errorf("[Validate] frame_pause must be positive, got %v", c.FramePause)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.Backend == BackendFile && c.SaveFile == "":
		return errors.New("[Validate] save_file is required for the file backend")
	case c.Backend == BackendSQLite && (c.SQLitePath == "" || c.SnapshotName == ""):
		return errors.New("[Validate] sqlite_path and snapshot_name are required for the sqlite backend")
	case c.Backend != BackendFile && c.Backend != BackendSQLite:
		return errors.Errorf("[Validate] unknown backend %q", c.Backend)
	}
	return nil
}
