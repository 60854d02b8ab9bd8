package config

import (
	_ "embed"
)

//go:embed defaults/candles.yaml
var defaultCandlesYAML []byte

// DefaultCandlesConfig returns the default configuration.
// It mirrors defaults/candles.yaml and backs it up if the embed is unreadable.
func DefaultCandlesConfig() CandlesConfig {
	return CandlesConfig{
		Session: SessionConfig{
			DurationSeconds:     60,
			InitialCandles:      4,
			MaxFrameDeltaMs:     32,
			CountdownThrottleMs: 90,
		},
		Playfield: PlayfieldConfig{
			Width:        480,
			Height:       800,
			ObjectWidth:  78,
			ObjectHeight: 92,
			EdgeMargin:   20,
		},
		Speeds: SpeedConfig{
			Candle:        105,
			Bomb:          165,
			Gift:          125,
			MaxMultiplier: 2.1,
			Drift:         24,
			DriftBase:     0.35,
			RetainFactor:  0.65,
		},
		Spawn: SpawnConfig{
			IntervalStartMs: 520,
			IntervalEndMs:   270,
			PGift:           0.10,
			PBomb:           0.18,
		},
		Gift: GiftConfig{
			Seconds: []int{1, 2, 3},
			Weights: []float64{0.55, 0.30, 0.15},
		},
		Scoring: ScoringConfig{
			CandlePoints: 1,
			BombPenalty:  5,
		},
		Linger: LingerConfig{
			CandleMs: 170,
			BombMs:   160,
			GiftMs:   160,
		},
		Voucher: VoucherConfig{
			Prefix: "AYA10",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCandlesYAML
}
