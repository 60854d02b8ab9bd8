// Package candles implements the simulation core of a 60-second arcade
// round: candles, bombs and gifts fall down a playfield and the player taps
// them for score or bonus time. The package owns spawning, motion, the
// difficulty ramp, tap resolution and the session state machine; hosts
// render it and feed it taps through an explicit Session API, and receive
// changes through an Observer.
package candles

// Kind identifies what a falling object is.
type Kind int

const (
	KindCandle Kind = iota
	KindBomb
	KindGift
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCandle:
		return "candle"
	case KindBomb:
		return "bomb"
	case KindGift:
		return "gift"
	default:
		return "unknown"
	}
}

// CandleStyle is a cosmetic tag drawn for every candle. It has no gameplay
// effect.
type CandleStyle string

const (
	StyleStrawberry CandleStyle = "strawberry"
	StyleOrange     CandleStyle = "orange"
	StylePear       CandleStyle = "pear"
	StyleBunny      CandleStyle = "bunny"
	StyleCat        CandleStyle = "cat"
	StyleCube       CandleStyle = "cube"
	StylePyramid    CandleStyle = "pyramid"
	StyleLayered    CandleStyle = "layered"
)

// CandleStyles is the fixed set candles draw their style from.
var CandleStyles = []CandleStyle{
	StyleStrawberry,
	StyleOrange,
	StylePear,
	StyleBunny,
	StyleCat,
	StyleCube,
	StylePyramid,
	StyleLayered,
}

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}
