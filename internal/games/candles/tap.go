package candles

import (
	"fmt"

	"github.com/vovakirdan/candle-rush/internal/core"
)

// Tap resolves a tap on object id at point at. Score and time effects are
// applied at once; the object leaves the live set and lingers for its
// kind's delay before it is removed. Taps outside a running round and taps
// on objects that are no longer live are ignored and return false.
func (s *Session) Tap(id ObjectID, at core.Vec2) bool {
	if s.phase != PhaseRunning {
		return false
	}
	obj, ok := s.registry.Get(id)
	if !ok {
		return false
	}

	var (
		outcome  Outcome
		fb       Feedback
		lingerMs float64
	)
	switch obj.Kind {
	case KindCandle:
		pts := s.cfg.Scoring.CandlePoints
		s.score += pts
		obj.Lit = true
		outcome = Outcome{ScoreDelta: pts, Lit: true}
		fb = Feedback{Text: fmt.Sprintf("+%d", pts), Kind: FeedbackGood}
		lingerMs = s.cfg.Linger.CandleMs
	case KindBomb:
		pen := s.cfg.Scoring.BombPenalty
		s.score -= pen
		outcome = Outcome{ScoreDelta: -pen}
		fb = Feedback{Text: fmt.Sprintf("−%d", pen), Kind: FeedbackBad}
		lingerMs = s.cfg.Linger.BombMs
	case KindGift:
		s.timeRemaining += float64(obj.Bonus)
		outcome = Outcome{BonusSeconds: obj.Bonus}
		fb = Feedback{Text: fmt.Sprintf("+%ds", obj.Bonus), Kind: FeedbackTime}
		lingerMs = s.cfg.Linger.GiftMs
	default:
		return false
	}
	fb.At = at

	s.registry.Retire(id, s.elapsed+lingerMs/1000)
	s.indicator.MoveTo(at.X, s.elapsed)

	s.observer.Tapped(at.X)
	s.observer.ObjectResolved(id, obj.Kind, outcome)
	if outcome.ScoreDelta != 0 {
		s.observer.ScoreChanged(s.score)
	}
	if outcome.BonusSeconds != 0 {
		s.emitCountdown()
	}
	s.observer.Feedback(fb)
	return true
}

// ObjectAt returns the topmost live object whose box contains point p.
// Later spawns are drawn over earlier ones, so they win.
func (s *Session) ObjectAt(p core.Vec2) (FallingObject, bool) {
	pf := s.cfg.Playfield
	live := s.registry.Live()
	for i := len(live) - 1; i >= 0; i-- {
		obj := live[i]
		if core.BoxAround(obj.Pos, pf.ObjectWidth, pf.ObjectHeight).Contains(p) {
			return *obj, true
		}
	}
	return FallingObject{}, false
}

// TapAt hit-tests p and taps the object found there, if any. It returns
// the tapped object's ID and whether the tap took effect.
func (s *Session) TapAt(p core.Vec2) (ObjectID, bool) {
	if s.phase != PhaseRunning {
		return 0, false
	}
	obj, ok := s.ObjectAt(p)
	if !ok {
		return 0, false
	}
	return obj.ID, s.Tap(obj.ID, p)
}
