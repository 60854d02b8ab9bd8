package candles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/candle-rush/internal/config"
)

func newTestSpawner(seed int64) (*Spawner, config.CandlesConfig) {
	cfg := config.DefaultCandlesConfig()
	return NewSpawner(&cfg, NewCurve(cfg), rand.New(rand.NewSource(seed))), cfg
}

func TestSpawnerInterval(t *testing.T) {
	sp, _ := newTestSpawner(1)

	_, ok := sp.Maybe(0.016, 0)
	assert.True(t, ok, "first attempt of a round fires")

	_, ok = sp.Maybe(0.5, 0)
	assert.False(t, ok, "520ms have not passed")

	_, ok = sp.Maybe(0.6, 0)
	assert.True(t, ok)

	// At full progress the gap shrinks to 270ms.
	_, ok = sp.Maybe(0.9, 1)
	assert.True(t, ok)

	sp.Reset()
	_, ok = sp.Maybe(0.901, 1)
	assert.True(t, ok, "reset forgets the last spawn")
}

func TestSpawnerKindDistribution(t *testing.T) {
	sp, _ := newTestSpawner(99)

	const draws = 50_000
	counts := make(map[Kind]int)
	for range draws {
		counts[sp.ChooseKind()]++
	}

	assert.InDelta(t, 0.10, float64(counts[KindGift])/draws, 0.02)
	assert.InDelta(t, 0.18, float64(counts[KindBomb])/draws, 0.02)
	assert.InDelta(t, 0.72, float64(counts[KindCandle])/draws, 0.02)
}

func TestSpawnerBuild(t *testing.T) {
	sp, cfg := newTestSpawner(3)
	pf := cfg.Playfield
	curve := NewCurve(cfg)

	tests := []struct {
		kind     Kind
		base     float64
		progress float64
	}{
		{KindCandle, 105, 0},
		{KindBomb, 165, 0.5},
		{KindGift, 125, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			for range 200 {
				d := sp.Build(tt.kind, tt.progress)
				assert.Equal(t, tt.kind, d.Kind)
				assert.GreaterOrEqual(t, d.Pos.X, pf.ObjectWidth*0.6)
				assert.Less(t, d.Pos.X, pf.Width-pf.ObjectWidth*0.6)
				assert.Less(t, d.Pos.Y, 0.0)
				assert.InDelta(t, tt.base*curve.SpeedMultiplier(tt.progress), d.Vel.Y, 1e-9)

				maxDrift := 24 * (0.35 + tt.progress)
				assert.LessOrEqual(t, d.Vel.X, maxDrift)
				assert.GreaterOrEqual(t, d.Vel.X, -maxDrift)

				switch tt.kind {
				case KindGift:
					assert.Contains(t, []int{1, 2, 3}, d.Bonus)
				case KindCandle:
					assert.Contains(t, CandleStyles, d.Style)
					assert.Zero(t, d.Bonus)
				default:
					assert.Zero(t, d.Bonus)
					assert.Empty(t, d.Style)
				}
			}
		})
	}
}
