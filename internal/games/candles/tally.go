package candles

import "github.com/vovakirdan/candle-rush/internal/core"

// Tally counts session events per kind. It is used by the headless
// simulator to report what happened in a round.
type Tally struct {
	NopObserver

	Spawned  map[Kind]int
	Resolved map[Kind]int
	Expired  int
	Removed  int
	Bonus    int // Seconds gained from gifts
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{
		Spawned:  make(map[Kind]int),
		Resolved: make(map[Kind]int),
	}
}

// ObjectSpawned counts a spawn of obj.Kind.
func (t *Tally) ObjectSpawned(obj FallingObject) {
	t.Spawned[obj.Kind]++
}

// ObjectResolved counts a tap and adds any bonus seconds.
func (t *Tally) ObjectResolved(id ObjectID, kind Kind, outcome Outcome) {
	t.Resolved[kind]++
	t.Bonus += outcome.BonusSeconds
}

// ObjectExpired counts an object that fell off the playfield.
func (t *Tally) ObjectExpired(id ObjectID) {
	t.Expired++
}

// ObjectRemoved counts an object that left the retiring set or was cleared.
func (t *Tally) ObjectRemoved(id ObjectID) {
	t.Removed++
}

// multiObserver fans events out to several observers in order. Its
// methods forward each Observer event unchanged.
type multiObserver []Observer

// Observers combines observers into one. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) ObjectSpawned(obj FallingObject) {
	for _, o := range m {
		o.ObjectSpawned(obj)
	}
}

func (m multiObserver) ObjectMoved(id ObjectID, pos core.Vec2) {
	for _, o := range m {
		o.ObjectMoved(id, pos)
	}
}

func (m multiObserver) ObjectResolved(id ObjectID, kind Kind, outcome Outcome) {
	for _, o := range m {
		o.ObjectResolved(id, kind, outcome)
	}
}

func (m multiObserver) ObjectExpired(id ObjectID) {
	for _, o := range m {
		o.ObjectExpired(id)
	}
}

func (m multiObserver) ObjectRemoved(id ObjectID) {
	for _, o := range m {
		o.ObjectRemoved(id)
	}
}

func (m multiObserver) CountdownTick(secondsRemaining int) {
	for _, o := range m {
		o.CountdownTick(secondsRemaining)
	}
}

func (m multiObserver) ScoreChanged(score int) {
	for _, o := range m {
		o.ScoreChanged(score)
	}
}

func (m multiObserver) Feedback(fb Feedback) {
	for _, o := range m {
		o.Feedback(fb)
	}
}

func (m multiObserver) Tapped(x float64) {
	for _, o := range m {
		o.Tapped(x)
	}
}

func (m multiObserver) PhaseChanged(from, to Phase) {
	for _, o := range m {
		o.PhaseChanged(from, to)
	}
}

func (m multiObserver) GameOver(summary Summary) {
	for _, o := range m {
		o.GameOver(summary)
	}
}
