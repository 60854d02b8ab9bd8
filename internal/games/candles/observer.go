package candles

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candle-rush/internal/core"
)

// FeedbackKind selects how a floating feedback text is styled.
type FeedbackKind int

const (
	FeedbackGood FeedbackKind = iota
	FeedbackBad
	FeedbackTime
)

// Feedback is a transient text shown where a tap landed ("+1", "−5", "+2s").
type Feedback struct {
	Text string
	Kind FeedbackKind
	At   core.Vec2
}

// Outcome describes the effect of resolving a tapped object.
type Outcome struct {
	ScoreDelta   int
	BonusSeconds int
	Lit          bool
}

// Summary is produced when a round ends.
type Summary struct {
	RunID      string
	FinalScore int
	Voucher    string
	PlayedAt   time.Time
	BestScore  int
}

// PlayedAtISO returns PlayedAt as an ISO 8601 UTC timestamp with
// millisecond precision.
func (s Summary) PlayedAtISO() string {
	return s.PlayedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Observer receives every externally visible change of a Session.
// Callbacks run synchronously on the goroutine driving the session.
type Observer interface {
	ObjectSpawned(obj FallingObject)
	ObjectMoved(id ObjectID, pos core.Vec2)
	ObjectResolved(id ObjectID, kind Kind, outcome Outcome)
	// ObjectExpired reports an object that fell off the playfield untapped.
	ObjectExpired(id ObjectID)
	// ObjectRemoved reports a resolved object whose linger is over.
	ObjectRemoved(id ObjectID)
	CountdownTick(secondsRemaining int)
	ScoreChanged(score int)
	Feedback(fb Feedback)
	// Tapped reports the x coordinate of every accepted tap, for the
	// matchstick indicator.
	Tapped(x float64)
	PhaseChanged(from, to Phase)
	GameOver(summary Summary)
}

// NopObserver ignores every event. Embed it to implement only the
// callbacks you need.
type NopObserver struct{}

func (NopObserver) ObjectSpawned(FallingObject) {}
func (NopObserver) ObjectMoved(ObjectID, core.Vec2) {}
func (NopObserver) ObjectResolved(ObjectID, Kind, Outcome) {}
func (NopObserver) ObjectExpired(ObjectID) {}
func (NopObserver) ObjectRemoved(ObjectID) {}
func (NopObserver) CountdownTick(int) {}
func (NopObserver) ScoreChanged(int) {}
func (NopObserver) Feedback(Feedback) {}
func (NopObserver) Tapped(float64) {}
func (NopObserver) PhaseChanged(Phase, Phase) {}
func (NopObserver) GameOver(Summary) {}

var _ Observer = NopObserver{}

// LogObserver writes session events to a logger. Per-frame motion is not
// logged.
type LogObserver struct {
	NopObserver
	Logger *log.Logger
}

// NewLogObserver creates a LogObserver.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{Logger: logger}
}

// ObjectSpawned logs the new object at Debug.
func (o *LogObserver) ObjectSpawned(obj FallingObject) {
	o.Logger.Debug("spawned", "id", obj.ID, "kind", obj.Kind, "x", int(obj.Pos.X), "vy", int(obj.Vel.Y))
}

// ObjectResolved logs the tap outcome at Debug.
func (o *LogObserver) ObjectResolved(id ObjectID, kind Kind, outcome Outcome) {
	o.Logger.Debug("resolved", "id", id, "kind", kind, "score", outcome.ScoreDelta, "bonus", outcome.BonusSeconds)
}

// ObjectExpired logs a missed object at Debug.
func (o *LogObserver) ObjectExpired(id ObjectID) {
	o.Logger.Debug("expired", "id", id)
}

// PhaseChanged logs the transition at Info.
func (o *LogObserver) PhaseChanged(from, to Phase) {
	o.Logger.Info("phase", "from", from, "to", to)
}

// GameOver logs the summary at Info.
func (o *LogObserver) GameOver(s Summary) {
	o.Logger.Info("game over", "run", s.RunID, "score", s.FinalScore, "best", s.BestScore, "voucher", s.Voucher)
}
