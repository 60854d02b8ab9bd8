package candles

import (
	"math"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/candle-rush/internal/core"
)

// ObjectID identifies a falling object. IDs increase monotonically and are
// never reused by a Registry.
type ObjectID uint64

// FallingObject is one spawned candle, bomb or gift.
type FallingObject struct {
	ID    ObjectID
	Kind  Kind
	Pos   core.Vec2 // Centre of the object; y grows downward
	Vel   core.Vec2 // Vel.Y is baked at spawn; Vel.X is the drift
	Style CandleStyle
	Bonus int // Seconds a gift adds; zero for other kinds

	Alive    bool
	Lit      bool    // A tapped candle shows its flame while lingering
	RemoveAt float64 // Round time (s) at which a resolved object disappears
}

// Move advances the object by dt seconds. ramp scales the baked vertical
// speed; horizontal drift bounces off [minX, maxX].
func (o *FallingObject) Move(dt, ramp, minX, maxX float64) {
	o.Pos = o.Pos.Add(core.Vec2{X: o.Vel.X * dt, Y: o.Vel.Y * ramp * dt})

	if o.Pos.X < minX {
		o.Pos.X = minX
		o.Vel.X = math.Abs(o.Vel.X)
	}
	if o.Pos.X > maxX {
		o.Pos.X = maxX
		o.Vel.X = -math.Abs(o.Vel.X)
	}
}

// Registry owns the falling objects of a session.
//
// Live objects are indexed by ID and kept in spawn order. Resolving an
// object retires it: it leaves the live set at once, so it can never be
// tapped twice, and waits in the retiring list until its linger is over.
type Registry struct {
	nextID   ObjectID
	live     *intmap.Map[ObjectID, *FallingObject]
	order    []ObjectID
	retiring []*FallingObject
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		live:  intmap.New[ObjectID, *FallingObject](64),
		order: make([]ObjectID, 0, 64),
	}
}

// Create registers a new live object built from a spawn decision and
// returns it with a fresh ID.
func (r *Registry) Create(d SpawnDecision) *FallingObject {
	r.nextID++
	obj := &FallingObject{
		ID:    r.nextID,
		Kind:  d.Kind,
		Pos:   d.Pos,
		Vel:   d.Vel,
		Style: d.Style,
		Bonus: d.Bonus,
		Alive: true,
	}
	r.live.Put(obj.ID, obj)
	r.order = append(r.order, obj.ID)
	return obj
}

// Get returns a live object.
func (r *Registry) Get(id ObjectID) (*FallingObject, bool) {
	return r.live.Get(id)
}

// Remove purges a live object. Removing an unknown or already removed ID
// is a no-op and returns false.
func (r *Registry) Remove(id ObjectID) bool {
	obj, ok := r.live.Get(id)
	if !ok {
		return false
	}
	obj.Alive = false
	r.live.Del(id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Retire removes a live object from the live set and keeps it in the
// retiring list until removeAt.
func (r *Registry) Retire(id ObjectID, removeAt float64) (*FallingObject, bool) {
	obj, ok := r.live.Get(id)
	if !ok {
		return nil, false
	}
	r.Remove(id)
	obj.RemoveAt = removeAt
	r.retiring = append(r.retiring, obj)
	return obj, true
}

// Sweep drops retiring objects whose linger ended at or before now and
// returns their IDs.
func (r *Registry) Sweep(now float64) []ObjectID {
	var done []ObjectID
	kept := r.retiring[:0]
	for _, obj := range r.retiring {
		if obj.RemoveAt <= now {
			done = append(done, obj.ID)
			continue
		}
		kept = append(kept, obj)
	}
	clear(r.retiring[len(kept):])
	r.retiring = kept
	return done
}

// Live returns the live objects in spawn order. The slice is a snapshot:
// removing objects while iterating it is safe.
func (r *Registry) Live() []*FallingObject {
	out := make([]*FallingObject, 0, len(r.order))
	for _, id := range r.order {
		if obj, ok := r.live.Get(id); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Retiring returns the objects that are resolved but still lingering.
func (r *Registry) Retiring() []*FallingObject {
	return slices.Clone(r.retiring)
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return r.live.Len()
}

// Reset drops every object. IDs keep counting up so that a host never
// sees an ID from a previous round again.
func (r *Registry) Reset() {
	for _, id := range r.order {
		if obj, ok := r.live.Get(id); ok {
			obj.Alive = false
		}
	}
	r.live.Clear()
	r.order = r.order[:0]
	clear(r.retiring)
	r.retiring = r.retiring[:0]
}
