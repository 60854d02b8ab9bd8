package candles

import "github.com/vovakirdan/candle-rush/internal/core"

const (
	indicatorMoveSec = 0.120
	indicatorLeanDiv = 160.0
	indicatorMaxLean = 0.55
)

// Indicator is the matchstick that slides to every tap. It is cosmetic: it
// has no effect on scoring and is only read by renderers.
type Indicator struct {
	minX, maxX float64
	home       float64

	x        float64
	fromX    float64
	toX      float64
	lean     float64
	startAt  float64
	inMotion bool
}

// NewIndicator creates an indicator for a playfield of the given width.
// Targets are clamped to [margin, width-margin].
func NewIndicator(width, margin float64) *Indicator {
	ind := &Indicator{
		minX: margin,
		maxX: width - margin,
		home: width / 2,
	}
	ind.Reset()
	return ind
}

// Reset parks the indicator in the middle of the playfield.
func (ind *Indicator) Reset() {
	ind.x = ind.home
	ind.fromX = ind.home
	ind.toX = ind.home
	ind.lean = 0
	ind.inMotion = false
}

// MoveTo starts a new slide toward targetX at round time now, cancelling
// any slide in progress.
func (ind *Indicator) MoveTo(targetX, now float64) {
	ind.fromX = ind.x
	ind.toX = core.ClampF(targetX, ind.minX, ind.maxX)
	ind.lean = core.ClampF((ind.toX-ind.fromX)/indicatorLeanDiv, -indicatorMaxLean, indicatorMaxLean)
	ind.startAt = now
	ind.inMotion = true
}

// Update advances the slide to round time now with a cubic ease-out.
func (ind *Indicator) Update(now float64) {
	if !ind.inMotion {
		return
	}
	p := core.ClampF((now-ind.startAt)/indicatorMoveSec, 0, 1)
	ease := 1 - (1-p)*(1-p)*(1-p)
	ind.x = ind.fromX + (ind.toX-ind.fromX)*ease
	if p >= 1 {
		ind.x = ind.toX
		ind.lean = 0
		ind.inMotion = false
	}
}

// X returns the current indicator position.
func (ind *Indicator) X() float64 { return ind.x }

// Lean returns the flame lean in [-0.55, 0.55]; zero when at rest.
func (ind *Indicator) Lean() float64 { return ind.lean }

// Moving reports whether a slide is in progress.
func (ind *Indicator) Moving() bool { return ind.inMotion }
