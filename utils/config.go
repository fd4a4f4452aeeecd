package utils

import (
	"encoding/json"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-universe/model"
)

// Config holds the configuration for the simulation
type Config struct {
	Universe UniverseConfig `json:"universe"`
	Run      RunConfig      `json:"run"`
	Patterns PatternConfig  `json:"patterns"`
}

// UniverseConfig describes the grid and how it is seeded
type UniverseConfig struct {
	Width          uint32 `json:"width" env:"GOL_WIDTH"`
	Height         uint32 `json:"height" env:"GOL_HEIGHT"`
	Seed           int64  `json:"seed" env:"GOL_SEED"` // 0 seeds from the clock
	SeedStrategy   string `json:"seed_strategy" env:"GOL_SEED_STRATEGY"`
	SpawnSize      uint32 `json:"spawn_size" env:"GOL_SPAWN_SIZE"`
	SymmetricStart uint32 `json:"symmetric_start" env:"GOL_SYMMETRIC_START"`
	Workers        int    `json:"workers" env:"GOL_WORKERS"`
}

// RunConfig controls the game loop around the universe
type RunConfig struct {
	FrameRate           time.Duration `json:"frame_rate" env:"GOL_FRAME_RATE"`
	MaxGenerations      int           `json:"max_generations" env:"GOL_MAX_GENERATIONS"`
	AutoRestart         bool          `json:"auto_restart" env:"GOL_AUTO_RESTART"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"GOL_STAGNATION_THRESHOLD"`
	Color               bool          `json:"color" env:"GOL_COLOR"`
	Interactive         bool          `json:"interactive" env:"GOL_INTERACTIVE"`
	StateFile           string        `json:"state_file" env:"GOL_STATE_FILE"`
	DumpFile            string        `json:"dump_file" env:"GOL_DUMP_FILE"`
}

// PatternConfig lists patterns stamped on top of the seed
type PatternConfig struct {
	Gliders []Placement `json:"gliders"`
	Pulsars []Placement `json:"pulsars"`
}

// Placement anchors a pattern on the grid
type Placement struct {
	Row uint32 `json:"row"`
	Col uint32 `json:"col"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Universe: UniverseConfig{
			Width:          model.DefaultWidth,
			Height:         model.DefaultHeight,
			SeedStrategy:   model.SeedSymmetric.String(),
			SpawnSize:      model.SpawnSizeSmall,
			SymmetricStart: model.DefaultSymmetricStart,
			Workers:        runtime.NumCPU(),
		},
		Run: RunConfig{
			FrameRate:           150 * time.Millisecond,
			MaxGenerations:      1000,
			AutoRestart:         true,
			StagnationThreshold: 5,
			Color:               true,
		},
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overrides config values with any GOL_* environment variables set
func ApplyEnv(config *Config) error {
	if err := env.Parse(&config.Universe); err != nil {
		return errors.Wrap(err, "parse env")
	}
	if err := env.Parse(&config.Run); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Universe.Width == 0 || c.Universe.Height == 0 {
		return errors.Wrapf(model.ErrInvalidDimension, "[Validate] grid %dx%d", c.Universe.Width, c.Universe.Height)
	}
	if _, err := model.ParseSeedStrategy(c.Universe.SeedStrategy); err != nil {
		return errors.Wrap(err, "[Validate] bad seed strategy")
	}
	if c.Universe.Workers < 0 {
		return errors.Errorf("[Validate] workers must not be negative, got %d", c.Universe.Workers)
	}
	if c.Run.FrameRate < 0 {
		return errors.Errorf("[Validate] frame rate must not be negative, got %v", c.Run.FrameRate)
	}
	if c.Run.StagnationThreshold < 0 {
		return errors.Errorf("[Validate] stagnation threshold must not be negative, got %d", c.Run.StagnationThreshold)
	}
	return nil
}

// UniverseOptions converts the universe section into model options
func (c Config) UniverseOptions(logger model.Logger) (model.Options, error) {
	strategy, err := model.ParseSeedStrategy(c.Universe.SeedStrategy)
	if err != nil {
		return model.Options{}, errors.Wrap(err, "[UniverseOptions] bad seed strategy")
	}

	var random model.RandomSource
	if c.Universe.Seed != 0 {
		random = model.NewRandom(c.Universe.Seed)
	}

	return model.Options{
		Width:          c.Universe.Width,
		Height:         c.Universe.Height,
		Strategy:       strategy,
		SpawnSize:      c.Universe.SpawnSize,
		SymmetricStart: c.Universe.SymmetricStart,
		Workers:        c.Universe.Workers,
		Random:         random,
		Logger:         logger,
	}, nil
}
