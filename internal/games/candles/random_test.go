package candles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseWeightedFrequencies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []int{1, 2, 3}
	weights := []float64{0.55, 0.30, 0.15}

	const draws = 100_000
	counts := make(map[int]int)
	for range draws {
		counts[ChooseWeighted(rng, values, weights)]++
	}

	for i, v := range values {
		freq := float64(counts[v]) / draws
		assert.InDelta(t, weights[i], freq, 0.02, "value %d", v)
	}
	assert.Len(t, counts, 3)
}

func TestChooseWeightedUnnormalised(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 1000 {
		v := ChooseWeighted(rng, []int{10, 20}, []float64{0, 5})
		assert.Equal(t, 20, v)
	}
}

func TestChooseWeightedSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 9, ChooseWeighted(rng, []int{9}, []float64{0.3}))
}

func TestUniformRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 10_000 {
		v := Uniform(rng, -24, 24)
		if v < -24 || v >= 24 {
			t.Fatalf("Uniform out of range: %v", v)
		}
	}
}

func TestPickStyleCoversSet(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seen := make(map[CandleStyle]bool)
	for range 2000 {
		seen[PickStyle(rng)] = true
	}
	assert.Len(t, seen, len(CandleStyles))
}
