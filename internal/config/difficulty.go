package config

import "math"

// DifficultyManager maps elapsed round time to a progress level in [0, 1].
// With the default config (enabled, initial level 0) the level is simply
// elapsed/duration clamped to [0, 1].
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the progress level for the given elapsed seconds of a
// round of nominal length duration.
func (d *DifficultyManager) Level(elapsed, duration float64) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}
	if duration <= 0 {
		duration = 1 // Prevent division by zero
	}

	progress := clampF(elapsed/duration, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
