package candles

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/candle-rush/internal/config"
	"github.com/vovakirdan/candle-rush/internal/core"
)

// timeEpsilon absorbs float drift when summing frame deltas, so that
// exactly D seconds of frames ends the round.
const timeEpsilon = 1e-6

// Session is one play-through: it owns score, remaining time, the object
// registry and the lifecycle phase.
//
// A Session is not safe for concurrent use. Tick, Advance, Tap and the
// lifecycle methods must be called from one goroutine; observers are
// invoked synchronously on it.
type Session struct {
	cfg       config.CandlesConfig
	curve     *Curve
	spawner   *Spawner
	registry  *Registry
	indicator *Indicator

	rng      *rand.Rand
	clock    core.Clock
	wallNow  func() time.Time
	observer Observer
	logger   *log.Logger
	store    BestScoreStore

	phase           Phase
	score           int
	timeRemaining   float64
	elapsed         float64 // Simulated seconds while Running; drives difficulty
	lastFrame       time.Duration
	lastCountdownAt float64
	best            int
	runID           string
	summary         *Summary
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the monotonic time source read by Tick.
func WithClock(c core.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithRand sets the random source for spawns and vouchers.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed seeds a private random source. A seed of 0 uses the current
// time.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithObserver sets the observer notified of session changes.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithBestStore sets where the best score is loaded from and saved to.
func WithBestStore(b BestScoreStore) Option {
	return func(s *Session) { s.store = b }
}

// WithWallClock sets the source of the timestamp and voucher date put in
// the end-of-round summary.
func WithWallClock(now func() time.Time) Option {
	return func(s *Session) { s.wallNow = now }
}

// NewSession creates an idle session. The best score is loaded from the
// configured store; a failing store is logged and treated as 0.
func NewSession(cfg config.CandlesConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("candles: invalid config: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		observer: NopObserver{},
		wallNow:  time.Now,
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = core.NewMonotonicClock()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.curve = NewCurve(cfg)
	s.spawner = NewSpawner(&s.cfg, s.curve, s.rng)
	s.registry = NewRegistry()
	s.indicator = NewIndicator(cfg.Playfield.Width, cfg.Playfield.EdgeMargin)
	s.timeRemaining = cfg.Session.DurationSeconds
	s.best = s.loadBest()

	return s, nil
}

// loadBest reads the persisted best score, treating any failure as 0.
func (s *Session) loadBest() int {
	if s.store == nil {
		return s.best
	}
	best, err := s.store.LoadBestScore()
	if err != nil {
		s.logger.Warn("cannot load best score", "err", err)
		return s.best
	}
	return best
}

// Start begins a new round. It is valid from Idle or Ended and reports
// whether the round started.
func (s *Session) Start() bool {
	if s.phase != PhaseIdle && s.phase != PhaseEnded {
		return false
	}

	s.clearObjects()
	s.score = 0
	s.timeRemaining = s.cfg.Session.DurationSeconds
	s.elapsed = 0
	s.lastCountdownAt = 0
	s.summary = nil
	s.runID = uuid.NewString()
	s.spawner.Reset()
	s.indicator.Reset()
	s.lastFrame = s.clock.Now()

	s.setPhase(PhaseRunning)
	s.observer.ScoreChanged(s.score)
	s.emitCountdown()

	for range s.cfg.Session.InitialCandles {
		s.spawn(s.spawner.Build(KindCandle, s.Progress()))
	}
	return true
}

// Pause freezes a running round.
func (s *Session) Pause() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.setPhase(PhasePaused)
	return true
}

// Resume continues a paused round. Time spent paused is skipped.
func (s *Session) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.lastFrame = s.clock.Now()
	s.setPhase(PhaseRunning)
	return true
}

// TogglePause pauses a running round or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.phase == PhasePaused {
		return s.Resume()
	}
	return s.Pause()
}

// Quit abandons a running or paused round and returns to Idle without
// touching the best score.
func (s *Session) Quit() bool {
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return false
	}
	s.clearObjects()
	s.setPhase(PhaseIdle)
	return true
}

// End finishes a running or paused round immediately and returns its
// summary.
func (s *Session) End() (Summary, bool) {
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return Summary{}, false
	}
	s.finish()
	return *s.summary, true
}

// finish records the best score, drops lingering objects, builds the
// summary and enters Ended.
func (s *Session) finish() {
	if s.store != nil {
		// Another session may have raised it meanwhile.
		if stored, err := s.store.LoadBestScore(); err == nil && stored > s.best {
			s.best = stored
		}
	}
	s.best = max(s.best, s.score)
	if s.store != nil {
		if err := s.store.SaveBestScore(s.best); err != nil {
			s.logger.Warn("cannot save best score", "err", err, "best", s.best)
		}
	}

	// Nothing lingers on the results screen.
	for _, id := range s.registry.Sweep(math.Inf(1)) {
		s.observer.ObjectRemoved(id)
	}

	playedAt := s.wallNow()
	s.summary = &Summary{
		RunID:      s.runID,
		FinalScore: s.score,
		Voucher:    FormatVoucher(s.cfg.Voucher.Prefix, s.score, playedAt, s.rng),
		PlayedAt:   playedAt,
		BestScore:  s.best,
	}

	s.setPhase(PhaseEnded)
	s.observer.GameOver(*s.summary)
}

// Tick reads the clock and advances the round by the time since the
// previous frame. It does nothing unless the round is running.
func (s *Session) Tick() bool {
	if s.phase != PhaseRunning {
		return false
	}
	now := s.clock.Now()
	dt := (now - s.lastFrame).Seconds()
	s.lastFrame = now
	return s.Advance(dt)
}

// Advance runs one frame of dt seconds: countdown, spawning, motion,
// eviction and linger sweep. dt is capped at the configured maximum frame
// delta. It does nothing unless the round is running.
func (s *Session) Advance(dt float64) bool {
	if s.phase != PhaseRunning {
		return false
	}
	dt = core.ClampF(dt, 0, s.cfg.Session.MaxFrameDeltaMs/1000)

	s.elapsed += dt
	s.timeRemaining -= dt
	if s.timeRemaining <= timeEpsilon {
		s.timeRemaining = 0
		s.emitCountdown()
		s.finish()
		return true
	}
	if (s.elapsed-s.lastCountdownAt)*1000 > s.cfg.Session.CountdownThrottleMs {
		s.emitCountdown()
	}

	progress := s.Progress()
	if d, ok := s.spawner.Maybe(s.elapsed, progress); ok {
		s.spawn(d)
	}
	if s.phase != PhaseRunning {
		return true
	}

	s.moveObjects(dt, progress)
	if s.phase != PhaseRunning {
		return true
	}

	for _, id := range s.registry.Sweep(s.elapsed) {
		s.observer.ObjectRemoved(id)
	}
	s.indicator.Update(s.elapsed)
	return true
}

// moveObjects applies motion to every live object and evicts the ones that
// fell below the playfield. Objects retired by an observer mid-loop are
// skipped.
func (s *Session) moveObjects(dt, progress float64) {
	pf := s.cfg.Playfield
	retain := s.cfg.Speeds.RetainFactor
	ramp := retain + (1-retain)*s.curve.SpeedMultiplier(progress)
	minX, maxX := pf.EdgeMargin, pf.Width-pf.EdgeMargin
	bottom := pf.Height + pf.ObjectHeight

	for _, obj := range s.registry.Live() {
		if s.phase != PhaseRunning {
			return
		}
		if !obj.Alive {
			continue
		}
		obj.Move(dt, ramp, minX, maxX)
		if obj.Pos.Y > bottom {
			s.registry.Remove(obj.ID)
			s.observer.ObjectExpired(obj.ID)
			continue
		}
		s.observer.ObjectMoved(obj.ID, obj.Pos)
	}
}

// spawn registers a decision and announces it.
func (s *Session) spawn(d SpawnDecision) {
	obj := s.registry.Create(d)
	s.observer.ObjectSpawned(*obj)
}

// clearObjects drops every live and lingering object, announcing each
// removal.
func (s *Session) clearObjects() {
	for _, obj := range s.registry.Live() {
		s.observer.ObjectRemoved(obj.ID)
	}
	for _, obj := range s.registry.Retiring() {
		s.observer.ObjectRemoved(obj.ID)
	}
	s.registry.Reset()
}

func (s *Session) setPhase(to Phase) {
	from := s.phase
	s.phase = to
	s.observer.PhaseChanged(from, to)
}

func (s *Session) emitCountdown() {
	s.lastCountdownAt = s.elapsed
	s.observer.CountdownTick(int(math.Ceil(math.Max(0, s.timeRemaining))))
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score. It may be negative.
func (s *Session) Score() int { return s.score }

// TimeRemaining returns the seconds left in the round.
func (s *Session) TimeRemaining() float64 { return s.timeRemaining }

// Elapsed returns the simulated seconds the round has been running.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Progress returns the difficulty progress in [0, 1].
func (s *Session) Progress() float64 { return s.curve.Progress(s.elapsed) }

// SpeedMultiplier returns the current speed multiplier.
func (s *Session) SpeedMultiplier() float64 { return s.curve.SpeedMultiplier(s.Progress()) }

// BestScore returns the best score ever reached, including this round
// once it has ended.
func (s *Session) BestScore() int { return s.best }

// RunID identifies the current or last round. Empty before the first start.
func (s *Session) RunID() string { return s.runID }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.CandlesConfig { return s.cfg }

// Summary returns the summary of the last ended round.
func (s *Session) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

// Objects returns copies of the live objects in spawn order.
func (s *Session) Objects() []FallingObject {
	return copyObjects(s.registry.Live())
}

// Retiring returns copies of resolved objects that are still lingering.
func (s *Session) Retiring() []FallingObject {
	return copyObjects(s.registry.Retiring())
}

// Indicator returns the current matchstick position and lean.
func (s *Session) Indicator() (x, lean float64) {
	return s.indicator.X(), s.indicator.Lean()
}

func copyObjects(objs []*FallingObject) []FallingObject {
	out := make([]FallingObject, len(objs))
	for i, obj := range objs {
		out[i] = *obj
	}
	return out
}
