package candles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/candle-rush/internal/config"
	"github.com/vovakirdan/candle-rush/internal/core"
)

// SpawnDecision describes an object the spawner wants created.
type SpawnDecision struct {
	Kind  Kind
	Pos   core.Vec2
	Vel   core.Vec2
	Style CandleStyle
	Bonus int
}

// Spawner decides, at most once per frame, whether a new object appears
// and what it is.
type Spawner struct {
	cfg         *config.CandlesConfig
	curve       *Curve
	rng         *rand.Rand
	lastSpawnAt float64 // Round time (s) of the last spawn attempt
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg *config.CandlesConfig, curve *Curve, rng *rand.Rand) *Spawner {
	sp := &Spawner{
		cfg:   cfg,
		curve: curve,
		rng:   rng,
	}
	sp.Reset()
	return sp
}

// Reset forgets the last spawn so the first attempt of a round fires.
func (sp *Spawner) Reset() {
	sp.lastSpawnAt = math.Inf(-1)
}

// Maybe returns a spawn decision when at least the current spawn interval
// has passed since the last attempt. The attempt timestamp is reset
// whenever it fires.
func (sp *Spawner) Maybe(now, progress float64) (SpawnDecision, bool) {
	intervalSec := sp.curve.SpawnIntervalMs(progress) / 1000
	if now-sp.lastSpawnAt < intervalSec {
		return SpawnDecision{}, false
	}
	sp.lastSpawnAt = now

	return sp.Build(sp.ChooseKind(), progress), true
}

// ChooseKind draws a kind by cumulative probability: gift below p_gift,
// bomb below p_gift+p_bomb, candle otherwise.
func (sp *Spawner) ChooseKind() Kind {
	r := sp.rng.Float64()
	switch {
	case r < sp.cfg.Spawn.PGift:
		return KindGift
	case r < sp.cfg.Spawn.PGift+sp.cfg.Spawn.PBomb:
		return KindBomb
	default:
		return KindCandle
	}
}

// Build creates the spawn parameters of an object of the given kind at the
// given progress: a position just above the top edge, a fall speed baked
// from the current speed multiplier and a drift that widens over the round.
func (sp *Spawner) Build(kind Kind, progress float64) SpawnDecision {
	pf := sp.cfg.Playfield
	x := Uniform(sp.rng, pf.ObjectWidth*0.6, pf.Width-pf.ObjectWidth*0.6)
	y := -pf.ObjectHeight * 0.6

	d := SpawnDecision{
		Kind: kind,
		Pos:  core.Vec2{X: x, Y: y},
	}

	switch kind {
	case KindCandle:
		d.Style = PickStyle(sp.rng)
	case KindGift:
		d.Bonus = ChooseWeighted(sp.rng, sp.cfg.Gift.Seconds, sp.cfg.Gift.Weights)
	}

	d.Vel.Y = sp.baseSpeed(kind) * sp.curve.SpeedMultiplier(progress)
	drift := sp.cfg.Speeds.Drift
	d.Vel.X = Uniform(sp.rng, -drift, drift) * (sp.cfg.Speeds.DriftBase + progress)

	return d
}

// baseSpeed returns the fall speed of a kind at multiplier 1.
func (sp *Spawner) baseSpeed(kind Kind) float64 {
	switch kind {
	case KindBomb:
		return sp.cfg.Speeds.Bomb
	case KindGift:
		return sp.cfg.Speeds.Gift
	default:
		return sp.cfg.Speeds.Candle
	}
}
