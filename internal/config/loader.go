package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config dirs.
const ConfigFileName = "candles.yaml"

// LoadCandles loads the game configuration.
// Search order: customPath -> ~/.candles/configs/candles.yaml -> ./configs/candles.yaml -> embedded default
//
// Only an explicit customPath can fail; the other sources are skipped when
// missing or unparsable.
func LoadCandles(customPath string) (CandlesConfig, error) {
	if customPath != "" {
		cfg := DefaultCandlesConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFileName); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", ConfigFileName)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultCandlesConfig()
	if err := yaml.Unmarshal(defaultCandlesYAML, &cfg); err != nil {
		return DefaultCandlesConfig(), nil
	}
	return cfg, nil
}

// tryLoad reads and validates a config file layered over the defaults.
func tryLoad(path string) (CandlesConfig, bool) {
	cfg := DefaultCandlesConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candles", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *CandlesConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate reports every structural problem in the config, joined.
func (c CandlesConfig) Validate() error {
	var errs []error

	if c.Session.DurationSeconds <= 0 {
		errs = append(errs, errors.New("session.duration_seconds must be positive"))
	}
	if c.Session.InitialCandles < 0 {
		errs = append(errs, errors.New("session.initial_candles must not be negative"))
	}
	if c.Session.MaxFrameDeltaMs <= 0 {
		errs = append(errs, errors.New("session.max_frame_delta_ms must be positive"))
	}
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, errors.New("playfield width and height must be positive"))
	}
	if c.Playfield.ObjectWidth <= 0 || c.Playfield.ObjectHeight <= 0 {
		errs = append(errs, errors.New("playfield object size must be positive"))
	}
	if c.Speeds.MaxMultiplier < 1 {
		errs = append(errs, errors.New("speeds.max_multiplier must be at least 1"))
	}
	if c.Spawn.IntervalStartMs <= 0 || c.Spawn.IntervalEndMs <= 0 {
		errs = append(errs, errors.New("spawn intervals must be positive"))
	}
	if !inUnit(c.Spawn.PGift) || !inUnit(c.Spawn.PBomb) || c.Spawn.PGift+c.Spawn.PBomb > 1 {
		errs = append(errs, errors.New("spawn probabilities must be in [0,1] and sum to at most 1"))
	}
	if len(c.Gift.Seconds) == 0 || len(c.Gift.Seconds) != len(c.Gift.Weights) {
		errs = append(errs, errors.New("gift.seconds and gift.weights must be non-empty and the same length"))
	} else {
		total := 0.0
		for _, w := range c.Gift.Weights {
			if w < 0 || math.IsNaN(w) {
				errs = append(errs, errors.New("gift.weights must not be negative"))
				break
			}
			total += w
		}
		if total <= 0 {
			errs = append(errs, errors.New("gift.weights must have a positive total"))
		}
	}
	if !inUnit(c.Difficulty.InitialLevel) {
		errs = append(errs, errors.New("difficulty.initial_level must be in [0,1]"))
	}

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
