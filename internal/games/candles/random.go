package candles

import "math/rand"

// Uniform returns a float uniformly drawn from [min, max).
func Uniform(rng *rand.Rand, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}

// PickStyle draws a candle style uniformly.
func PickStyle(rng *rand.Rand) CandleStyle {
	return CandleStyles[rng.Intn(len(CandleStyles))]
}

// ChooseWeighted draws one of values with probability proportional to its
// weight. A running remainder r in [0, total) has each weight subtracted in
// turn; the first value that takes r to zero or below wins. If rounding
// leaves r positive after the last weight, the last value is returned.
//
// values and weights must have the same non-zero length.
func ChooseWeighted(rng *rand.Rand, values []int, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := rng.Float64() * total
	for i, v := range values {
		r -= weights[i]
		if r <= 0 {
			return v
		}
	}
	return values[len(values)-1]
}
