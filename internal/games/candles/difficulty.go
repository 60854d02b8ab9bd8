package candles

import (
	"math"

	"github.com/vovakirdan/candle-rush/internal/config"
	"github.com/vovakirdan/candle-rush/internal/core"
)

// Curve maps round time to difficulty. Speed eases in quadratically (calm
// start, steep finish) while the spawn interval eases with a square root
// (spawns quicken early, then level off).
type Curve struct {
	duration        float64
	maxMultiplier   float64
	intervalStartMs float64
	intervalEndMs   float64
	levels          *config.DifficultyManager
}

// NewCurve builds the curve from the game config.
func NewCurve(cfg config.CandlesConfig) *Curve {
	return &Curve{
		duration:        cfg.Session.DurationSeconds,
		maxMultiplier:   cfg.Speeds.MaxMultiplier,
		intervalStartMs: cfg.Spawn.IntervalStartMs,
		intervalEndMs:   cfg.Spawn.IntervalEndMs,
		levels:          config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Progress returns the normalised round progress in [0, 1] for the given
// elapsed seconds. Bonus time from gifts does not feed into it.
func (c *Curve) Progress(elapsed float64) float64 {
	return c.levels.Level(elapsed, c.duration)
}

// SpeedMultiplier returns lerp(1, max, progress²).
func (c *Curve) SpeedMultiplier(progress float64) float64 {
	p := core.ClampF(progress, 0, 1)
	return core.Lerp(1, c.maxMultiplier, p*p)
}

// SpawnIntervalMs returns the minimum gap between spawn attempts,
// lerp(start, end, sqrt(progress)).
func (c *Curve) SpawnIntervalMs(progress float64) float64 {
	p := core.ClampF(progress, 0, 1)
	return core.Lerp(c.intervalStartMs, c.intervalEndMs, math.Sqrt(p))
}
