package candles

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/candle-rush/internal/config"
	"github.com/vovakirdan/candle-rush/internal/core"
)

const frame = 0.016

type recorder struct {
	NopObserver

	spawned   []FallingObject
	resolved  []Outcome
	expired   []ObjectID
	removed   []ObjectID
	countdown []int
	scores    []int
	feedback  []Feedback
	taps      []float64
	phases    []Phase
	summaries []Summary
}

func (r *recorder) ObjectSpawned(obj FallingObject) { r.spawned = append(r.spawned, obj) }
func (r *recorder) ObjectResolved(_ ObjectID, _ Kind, o Outcome) {
	r.resolved = append(r.resolved, o)
}
func (r *recorder) ObjectExpired(id ObjectID) { r.expired = append(r.expired, id) }
func (r *recorder) ObjectRemoved(id ObjectID) { r.removed = append(r.removed, id) }
func (r *recorder) CountdownTick(secs int) { r.countdown = append(r.countdown, secs) }
func (r *recorder) ScoreChanged(score int) { r.scores = append(r.scores, score) }
func (r *recorder) Feedback(fb Feedback) { r.feedback = append(r.feedback, fb) }
func (r *recorder) Tapped(x float64) { r.taps = append(r.taps, x) }
func (r *recorder) PhaseChanged(_, to Phase) { r.phases = append(r.phases, to) }
func (r *recorder) GameOver(s Summary) { r.summaries = append(r.summaries, s) }

func (r *recorder) spawnedOf(kind Kind) []FallingObject {
	var out []FallingObject
	for _, obj := range r.spawned {
		if obj.Kind == kind {
			out = append(out, obj)
		}
	}
	return out
}

var fixedWall = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestSession(t *testing.T, opts ...Option) (*Session, *recorder, *core.ManualClock) {
	t.Helper()
	rec := &recorder{}
	clock := core.NewManualClock(time.Second)
	base := []Option{
		WithClock(clock),
		WithSeed(12345),
		WithObserver(rec),
		WithWallClock(func() time.Time { return fixedWall }),
	}
	s, err := NewSession(config.DefaultCandlesConfig(), append(base, opts...)...)
	require.NoError(t, err)
	return s, rec, clock
}

// place injects an object at a known position.
func place(s *Session, kind Kind, pos core.Vec2, bonus int) FallingObject {
	s.spawn(SpawnDecision{Kind: kind, Pos: pos, Vel: core.Vec2{Y: 105}, Bonus: bonus})
	objs := s.Objects()
	return objs[len(objs)-1]
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultCandlesConfig()
	cfg.Session.DurationSeconds = 0
	_, err := NewSession(cfg)
	assert.Error(t, err)
}

func TestStartSeedsInitialCandles(t *testing.T) {
	s, rec, _ := newTestSession(t)
	require.True(t, s.Start())

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 60.0, s.TimeRemaining())
	assert.Len(t, rec.spawnedOf(KindCandle), 4)
	assert.Len(t, s.Objects(), 4)
	assert.Equal(t, []int{60}, rec.countdown)
	assert.NotEmpty(t, s.RunID())

	assert.False(t, s.Start(), "start while running is ignored")
}

func TestTapCandle(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	candle := rec.spawnedOf(KindCandle)[0]

	at := core.Vec2{X: 3, Y: 700}
	require.True(t, s.Tap(candle.ID, at))
	assert.Equal(t, 1, s.Score())
	assert.False(t, s.Tap(candle.ID, at), "second tap is a no-op")
	assert.Equal(t, 1, s.Score())

	require.Len(t, rec.feedback, 1)
	assert.Equal(t, Feedback{Text: "+1", Kind: FeedbackGood, At: at}, rec.feedback[0])
	assert.Equal(t, []float64{3}, rec.taps)

	retiring := s.Retiring()
	require.Len(t, retiring, 1)
	assert.True(t, retiring[0].Lit)
	assert.Len(t, s.Objects(), 3)
}

func TestTapBomb(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	bomb := place(s, KindBomb, core.Vec2{X: 100, Y: 100}, 0)

	require.True(t, s.Tap(bomb.ID, bomb.Pos))
	assert.Equal(t, -5, s.Score())
	assert.Equal(t, FeedbackBad, rec.feedback[0].Kind)
	assert.Equal(t, "−5", rec.feedback[0].Text)
}

func TestTapGiftAddsDrawnBonus(t *testing.T) {
	for _, bonus := range []int{1, 2, 3} {
		s, rec, _ := newTestSession(t)
		s.Start()
		s.Advance(frame)
		before := s.TimeRemaining()
		gift := place(s, KindGift, core.Vec2{X: 200, Y: 200}, bonus)

		require.True(t, s.Tap(gift.ID, gift.Pos))
		assert.InDelta(t, before+float64(bonus), s.TimeRemaining(), 1e-9)
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, FeedbackTime, rec.feedback[0].Kind)
		assert.Equal(t, Outcome{BonusSeconds: bonus}, rec.resolved[0])
	}
}

func TestGiftBonusFromSpawn(t *testing.T) {
	s, rec, clock := newTestSession(t, WithSeed(2024))
	s.Start()

	// Run until a gift shows up, then tap it.
	var gift FallingObject
	found := false
	for !found && s.Phase() == PhaseRunning {
		clock.Advance(16 * time.Millisecond)
		s.Tick()
		if gifts := rec.spawnedOf(KindGift); len(gifts) > 0 {
			gift, found = gifts[0], true
		}
	}
	require.True(t, found, "a gift should spawn within a round")
	require.Contains(t, []int{1, 2, 3}, gift.Bonus)

	before := s.TimeRemaining()
	require.True(t, s.Tap(gift.ID, gift.Pos))
	assert.InDelta(t, before+float64(gift.Bonus), s.TimeRemaining(), 1e-9)
}

func TestEvictionHasNoEffect(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	pf := s.Config().Playfield
	obj := place(s, KindCandle, core.Vec2{X: 240, Y: pf.Height + pf.ObjectHeight - 0.5}, 0)

	before := s.TimeRemaining()
	s.Advance(frame)

	assert.Contains(t, rec.expired, obj.ID)
	assert.Equal(t, 0, s.Score())
	assert.InDelta(t, before-frame, s.TimeRemaining(), 1e-9)
	assert.False(t, s.Tap(obj.ID, obj.Pos), "expired objects cannot be tapped")
}

func TestFullRoundEnds(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		wantBest int
	}{
		{"no previous best", 0, 0},
		{"previous best kept", 7, 7},
		{"negative stored best", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryBestStore(tt.previous)
			s, rec, _ := newTestSession(t, WithBestStore(store))
			s.Start()

			for range 3750 {
				s.Advance(frame)
			}

			assert.Equal(t, PhaseEnded, s.Phase())
			assert.Equal(t, 0, s.Score())
			assert.Equal(t, 0.0, s.TimeRemaining())
			assert.Equal(t, tt.wantBest, s.BestScore())

			stored, _ := store.LoadBestScore()
			assert.Equal(t, tt.wantBest, stored)

			require.Len(t, rec.summaries, 1)
			assert.Equal(t, 0, rec.summaries[0].FinalScore)
			assert.Equal(t, 0, rec.countdown[len(rec.countdown)-1])
			assert.False(t, s.Advance(frame), "no ticks after the round ended")
		})
	}
}

func TestFullRoundWithClock(t *testing.T) {
	s, _, clock := newTestSession(t)
	s.Start()

	frames := 0
	for s.Phase() == PhaseRunning && frames < 10_000 {
		clock.Advance(16 * time.Millisecond)
		s.Tick()
		frames++
	}
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.InDelta(t, 3750, frames, 1)
}

func TestTapScenarioThenManualEnd(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()

	candles := rec.spawnedOf(KindCandle)
	require.GreaterOrEqual(t, len(candles), 3)
	for _, c := range candles[:3] {
		require.True(t, s.Tap(c.ID, c.Pos))
	}
	assert.Equal(t, 3, s.Score())

	bomb := place(s, KindBomb, core.Vec2{X: 300, Y: 50}, 0)
	require.True(t, s.Tap(bomb.ID, bomb.Pos))
	assert.Equal(t, -2, s.Score())

	sum, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, -2, sum.FinalScore)
	assert.Equal(t, 0, sum.BestScore)
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Equal(t, []int{0, 1, 2, 3, -2}, rec.scores)
	assert.Empty(t, s.Retiring(), "tapped objects do not linger past the end")
	assert.Len(t, rec.removed, 4)
	assert.Len(t, s.Objects(), 1, "untapped candle is still shown")

	assert.Regexp(t, regexp.MustCompile(`^AYA10-260314--2-[0-9A-Z]{6}$`), sum.Voucher)
	assert.Equal(t, "2026-03-14T09:26:53.000Z", sum.PlayedAtISO())

	_, ok = s.End()
	assert.False(t, ok, "end is valid only once")
}

func TestPauseFreezesRound(t *testing.T) {
	s, rec, clock := newTestSession(t)
	s.Start()
	for range 30 {
		clock.Advance(16 * time.Millisecond)
		s.Tick()
	}

	require.True(t, s.Pause())
	timeBefore := s.TimeRemaining()
	objsBefore := s.Objects()
	spawnedBefore := len(rec.spawned)

	clock.Advance(5 * time.Second)
	assert.False(t, s.Tick())
	assert.False(t, s.Advance(5))
	assert.False(t, s.Tap(objsBefore[0].ID, objsBefore[0].Pos), "taps are ignored while paused")

	assert.Equal(t, timeBefore, s.TimeRemaining())
	assert.Equal(t, objsBefore, s.Objects())
	assert.Len(t, rec.spawned, spawnedBefore)

	require.True(t, s.Resume())
	clock.Advance(16 * time.Millisecond)
	require.True(t, s.Tick())
	assert.InDelta(t, timeBefore-frame, s.TimeRemaining(), 1e-9, "no jump after resume")
}

func TestTogglePause(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.False(t, s.TogglePause(), "idle session cannot pause")
	s.Start()
	assert.True(t, s.TogglePause())
	assert.Equal(t, PhasePaused, s.Phase())
	assert.True(t, s.TogglePause())
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestQuit(t *testing.T) {
	store := NewMemoryBestStore(4)
	s, rec, _ := newTestSession(t, WithBestStore(store))

	assert.False(t, s.Quit(), "nothing to quit while idle")
	s.Start()
	c := rec.spawnedOf(KindCandle)[0]
	s.Tap(c.ID, c.Pos)
	s.Pause()

	require.True(t, s.Quit())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Objects())
	assert.Empty(t, s.Retiring())
	assert.Empty(t, rec.summaries)
	best, _ := store.LoadBestScore()
	assert.Equal(t, 4, best)

	assert.True(t, s.Start(), "start again after quit")
	assert.Equal(t, 0, s.Score())
}

func TestRestartAfterEnd(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	c := rec.spawnedOf(KindCandle)[0]
	s.Tap(c.ID, c.Pos)
	s.End()
	firstRun := s.RunID()

	require.True(t, s.Start())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 60.0, s.TimeRemaining())
	assert.NotEqual(t, firstRun, s.RunID())
	_, ok := s.Summary()
	assert.False(t, ok)
	assert.Equal(t, 1, s.BestScore())
}

func TestLingerSweep(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	c := rec.spawnedOf(KindCandle)[0]
	require.True(t, s.Tap(c.ID, c.Pos))

	for range 10 { // 160ms
		s.Advance(frame)
	}
	assert.NotContains(t, rec.removed, c.ID)
	assert.Len(t, s.Retiring(), 1)

	s.Advance(frame) // 176ms
	assert.Contains(t, rec.removed, c.ID)
	assert.Empty(t, s.Retiring())
	assert.Equal(t, 1, s.Score(), "linger does not touch score")
}

func TestCountdownThrottle(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	for range 60 { // 960ms
		s.Advance(frame)
	}
	// One on start, then one every 96ms (first frame past 90ms).
	assert.Len(t, rec.countdown, 1+10)
}

func TestHitTesting(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()
	obj := place(s, KindBomb, core.Vec2{X: 240, Y: 400}, 0)

	got, ok := s.ObjectAt(core.Vec2{X: 270, Y: 440})
	require.True(t, ok)
	assert.Equal(t, obj.ID, got.ID)

	id, ok := s.TapAt(core.Vec2{X: 240, Y: 400})
	assert.True(t, ok)
	assert.Equal(t, obj.ID, id)
	assert.Equal(t, -5, s.Score())

	_, ok = s.TapAt(core.Vec2{X: 240, Y: 400})
	assert.False(t, ok, "resolved object is no longer hit")
}

func TestIndicatorFollowsTap(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Start()
	x, lean := s.Indicator()
	assert.Equal(t, 240.0, x)
	assert.Zero(t, lean)

	c := rec.spawnedOf(KindCandle)[0]
	s.Tap(c.ID, core.Vec2{X: 470, Y: 300})
	_, lean = s.Indicator()
	assert.InDelta(t, 0.55, lean, 1e-9)

	for range 8 {
		s.Advance(frame)
	}
	x, lean = s.Indicator()
	assert.Equal(t, 460.0, x, "clamped to the edge margin")
	assert.Zero(t, lean)
}

type failingStore struct{}

func (failingStore) LoadBestScore() (int, error) { return 0, errors.New("disk on fire") }
func (failingStore) SaveBestScore(int) error { return errors.New("disk on fire") }

func TestFailingStoreDoesNotBreakRound(t *testing.T) {
	s, rec, _ := newTestSession(t, WithBestStore(failingStore{}))
	s.Start()
	c := rec.spawnedOf(KindCandle)[0]
	s.Tap(c.ID, c.Pos)

	sum, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, 1, sum.BestScore)
}

type quitter struct {
	NopObserver
	s *Session
}

func (q *quitter) ObjectMoved(ObjectID, core.Vec2) { q.s.Quit() }

func TestObserverMayQuitMidFrame(t *testing.T) {
	q := &quitter{}
	s, err := NewSession(config.DefaultCandlesConfig(), WithSeed(1), WithObserver(q))
	require.NoError(t, err)
	q.s = s
	s.Start()

	assert.True(t, s.Advance(frame))
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Objects())
	assert.False(t, s.Advance(frame))
}

// midFrameTapper taps every other live candle from the first
// ObjectMoved callback of a frame.
type midFrameTapper struct {
	recorder
	s             *Session
	done          bool
	tapped        map[ObjectID]bool
	movedAfterTap []ObjectID
}

func (m *midFrameTapper) ObjectMoved(id ObjectID, _ core.Vec2) {
	if m.tapped[id] {
		m.movedAfterTap = append(m.movedAfterTap, id)
		return
	}
	if m.done {
		return
	}
	m.done = true
	for _, obj := range m.s.Objects() {
		if obj.ID != id && obj.Kind == KindCandle && m.s.Tap(obj.ID, obj.Pos) {
			m.tapped[obj.ID] = true
		}
	}
}

func TestTapDuringMoveLeavesRetiredObjectsAlone(t *testing.T) {
	m := &midFrameTapper{tapped: make(map[ObjectID]bool)}
	s, err := NewSession(config.DefaultCandlesConfig(),
		WithClock(core.NewManualClock(0)),
		WithSeed(12345),
		WithObserver(m),
	)
	require.NoError(t, err)
	m.s = s
	s.Start()

	s.Advance(frame)
	require.GreaterOrEqual(t, len(m.tapped), 3)
	assert.Equal(t, len(m.tapped), s.Score())
	assert.Len(t, m.resolved, len(m.tapped))

	for range 15 { // Past the candle linger
		s.Advance(frame)
	}

	assert.Empty(t, m.movedAfterTap, "retired objects never move")
	assert.Equal(t, len(m.tapped), s.Score(), "each tap scores once")
	assert.Len(t, m.resolved, len(m.tapped))
	for id := range m.tapped {
		assert.NotContains(t, m.expired, id)
		removed := 0
		for _, r := range m.removed {
			if r == id {
				removed++
			}
		}
		assert.Equal(t, 1, removed, "object %d removed once", id)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _, _ := newTestSession(t)
	b, _, _ := newTestSession(t)
	a.Start()
	b.Start()

	obj := place(a, KindBomb, core.Vec2{X: 100, Y: 100}, 0)
	a.Tap(obj.ID, obj.Pos)

	assert.Equal(t, -5, a.Score())
	assert.Equal(t, 0, b.Score())
}
