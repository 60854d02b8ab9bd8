package candles

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/candle-rush/internal/core"
)

// Driver acts on a session between frames, for example a scripted player.
type Driver interface {
	Drive(s *Session)
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(s *Session)

// Drive calls f(s).
func (f DriverFunc) Drive(s *Session) { f(s) }

// Run drives a started session with a ticker until the round leaves
// Running and Paused, or ctx is cancelled. Drivers run after every frame.
func Run(ctx context.Context, s *Session, interval time.Duration, drivers ...Driver) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !active(s) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
			for _, d := range drivers {
				d.Drive(s)
			}
		}
	}
}

// RunSimulated drives a started session as fast as possible on a manual
// clock, advancing it by step per frame, until the round leaves Running
// and Paused or maxFrames frames have run. It returns the frame count.
func RunSimulated(s *Session, clock *core.ManualClock, step time.Duration, maxFrames int, drivers ...Driver) int {
	frames := 0
	for active(s) && frames < maxFrames {
		clock.Advance(step)
		s.Tick()
		for _, d := range drivers {
			d.Drive(s)
		}
		frames++
	}
	return frames
}

func active(s *Session) bool {
	p := s.Phase()
	return p == PhaseRunning || p == PhasePaused
}

// Bot is a scripted player. Each object is judged once, as soon as it is
// fully on screen: with probability accuracy the bot does the right thing
// (tap candles and gifts, leave bombs), otherwise the opposite.
type Bot struct {
	rng      *rand.Rand
	accuracy float64
	judged   map[ObjectID]struct{}
	runID    string
}

// NewBot creates a bot with the given accuracy in [0, 1].
func NewBot(rng *rand.Rand, accuracy float64) *Bot {
	return &Bot{
		rng:      rng,
		accuracy: core.ClampF(accuracy, 0, 1),
		judged:   make(map[ObjectID]struct{}),
	}
}

// Drive taps the objects the bot decides to tap.
func (b *Bot) Drive(s *Session) {
	if s.Phase() != PhaseRunning {
		return
	}
	if s.RunID() != b.runID {
		b.runID = s.RunID()
		clear(b.judged)
	}

	for _, obj := range s.Objects() {
		if _, seen := b.judged[obj.ID]; seen || obj.Pos.Y < 0 {
			continue
		}
		b.judged[obj.ID] = struct{}{}

		want := obj.Kind != KindBomb
		if b.rng.Float64() >= b.accuracy {
			want = !want
		}
		if want {
			s.Tap(obj.ID, obj.Pos)
		}
	}
}
