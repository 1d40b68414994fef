package aspen

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-decodable engine configuration.
//
//	[timestep]
//	hz = 60
//	max_frame_time = 0.25
//
//	[engine]
//	debug = false
type Config struct {
	Timestep TimestepConfig `toml:"timestep"`
	Engine   EngineConfig   `toml:"engine"`
}

// TimestepConfig controls the fixed-timestep loop.
type TimestepConfig struct {
	Hz           float64 `toml:"hz"`
	MaxFrameTime float64 `toml:"max_frame_time"`
}

// EngineConfig holds miscellaneous engine switches.
type EngineConfig struct {
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when fields are absent:
// 60 Hz, 0.25 s frame clamp, debug off.
func DefaultConfig() Config {
	return Config{
		Timestep: TimestepConfig{
			Hz:           1.0 / DefaultFixedTimestep,
			MaxFrameTime: DefaultMaxFrameTime,
		},
	}
}

// LoadConfig decodes a TOML document, filling absent fields from
// DefaultConfig. Non-positive timestep values are replaced by defaults
// rather than propagated.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.Timestep.Hz <= 0 {
		cfg.Timestep.Hz = 1.0 / DefaultFixedTimestep
	}
	if cfg.Timestep.MaxFrameTime <= 0 {
		cfg.Timestep.MaxFrameTime = DefaultMaxFrameTime
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a TOML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// NewGameLoopFromConfig creates a GameLoop with the configured timestep and
// frame clamp.
func NewGameLoopFromConfig(cfg Config) *GameLoop {
	l := NewGameLoop()
	l.FixedTimestep = 1.0 / cfg.Timestep.Hz
	l.MaxFrameTime = cfg.Timestep.MaxFrameTime
	return l
}
