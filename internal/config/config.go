// Package config provides YAML-based game configuration loading and
// difficulty preset handling for the candle game.
package config

// CandlesConfig contains all tunables of the simulation.
type CandlesConfig struct {
	Session    SessionConfig    `yaml:"session"`
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Speeds     SpeedConfig      `yaml:"speeds"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Gift       GiftConfig       `yaml:"gift"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Linger     LingerConfig     `yaml:"linger"`
	Voucher    VoucherConfig    `yaml:"voucher"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SessionConfig defines round timing.
type SessionConfig struct {
	DurationSeconds     float64 `yaml:"duration_seconds"`
	InitialCandles      int     `yaml:"initial_candles"`
	MaxFrameDeltaMs     float64 `yaml:"max_frame_delta_ms"`
	CountdownThrottleMs float64 `yaml:"countdown_throttle_ms"`
}

// PlayfieldConfig defines the playfield and object sizes in playfield units.
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	ObjectWidth  float64 `yaml:"object_width"`
	ObjectHeight float64 `yaml:"object_height"`
	EdgeMargin   float64 `yaml:"edge_margin"`
}

// SpeedConfig defines fall speeds (units/s) and the speed ramp.
type SpeedConfig struct {
	Candle        float64 `yaml:"candle"`
	Bomb          float64 `yaml:"bomb"`
	Gift          float64 `yaml:"gift"`
	MaxMultiplier float64 `yaml:"max_multiplier"`
	Drift         float64 `yaml:"drift"`         // Max horizontal drift magnitude at scale 1
	DriftBase     float64 `yaml:"drift_base"`    // Drift scale at progress 0
	RetainFactor  float64 `yaml:"retain_factor"` // Share of baked speed kept regardless of ramp
}

// SpawnConfig defines spawn cadence and kind probabilities.
type SpawnConfig struct {
	IntervalStartMs float64 `yaml:"interval_start_ms"`
	IntervalEndMs   float64 `yaml:"interval_end_ms"`
	PGift           float64 `yaml:"p_gift"`
	PBomb           float64 `yaml:"p_bomb"`
}

// GiftConfig defines the weighted bonus-seconds distribution of gifts.
type GiftConfig struct {
	Seconds []int     `yaml:"seconds"`
	Weights []float64 `yaml:"weights"`
}

// ScoringConfig defines score deltas.
type ScoringConfig struct {
	CandlePoints int `yaml:"candle_points"`
	BombPenalty  int `yaml:"bomb_penalty"`
}

// LingerConfig defines how long resolved objects stay visible.
type LingerConfig struct {
	CandleMs float64 `yaml:"candle_ms"`
	BombMs   float64 `yaml:"bomb_ms"`
	GiftMs   float64 `yaml:"gift_ms"`
}

// VoucherConfig defines the cosmetic voucher code format.
type VoucherConfig struct {
	Prefix string `yaml:"prefix"`
}

// DifficultyConfig defines how the round's progress is derived from time.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = calm start, 1.0 = frantic from the first frame
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
