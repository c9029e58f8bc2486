package radar

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeContact struct {
	id      EntityID
	pos     r3.Vec
	player  bool
	dead    bool
	kind    TrackKind
	hasKind bool
	tag     string
}

func (c *fakeContact) ID() EntityID            { return c.id }
func (c *fakeContact) Position() r3.Vec        { return c.pos }
func (c *fakeContact) IsPlayer() bool          { return c.player }
func (c *fakeContact) IsDead() bool            { return c.dead }
func (c *fakeContact) Kind() (TrackKind, bool) { return c.kind, c.hasKind }
func (c *fakeContact) Tag() string             { return c.tag }

type fakeMissile struct {
	id    EntityID
	pos   r3.Vec
	fwd   r3.Vec
	vel   r3.Vec
	owner EntityID
	gone  bool
}

func (m *fakeMissile) ID() EntityID      { return m.id }
func (m *fakeMissile) Position() r3.Vec  { return m.pos }
func (m *fakeMissile) Forward() r3.Vec   { return m.fwd }
func (m *fakeMissile) Velocity() r3.Vec  { return m.vel }
func (m *fakeMissile) OwnerID() EntityID { return m.owner }
func (m *fakeMissile) Valid() bool       { return !m.gone }

// incoming returns a missile dist meters north of the origin flying
// straight south at 300 m/s.
func incoming(id EntityID, dist float64) *fakeMissile {
	return &fakeMissile{
		id:  id,
		pos: r3.Vec{Z: dist},
		fwd: r3.Vec{Z: -1},
		vel: r3.Vec{Z: -300},
	}
}

type fakeWorld struct {
	contacts []Contact
	missiles []Missile
	calls    int
}

func (w *fakeWorld) Contacts() []Contact {
	w.calls++
	return w.contacts
}

func (w *fakeWorld) Missiles() []Missile {
	return w.missiles
}

type fakeObserver struct {
	id     EntityID
	frame  ObserverFrame
	gone   bool
	target EntityID
	locked bool
}

func newObserver(id EntityID) *fakeObserver {
	return &fakeObserver{id: id, frame: ObserverFrame{Forward: r3.Vec{Z: 1}}}
}

func (o *fakeObserver) ID() EntityID         { return o.id }
func (o *fakeObserver) Frame() ObserverFrame { return o.frame }
func (o *fakeObserver) Valid() bool          { return !o.gone }
func (o *fakeObserver) CurrentTarget() (EntityID, bool) {
	return o.target, o.target != InvalidEntityID
}
func (o *fakeObserver) WeaponLocked() bool { return o.locked }

// plainObserver hides the weapon methods of fakeObserver.
type plainObserver struct{ o *fakeObserver }

func (p plainObserver) ID() EntityID         { return p.o.ID() }
func (p plainObserver) Frame() ObserverFrame { return p.o.Frame() }
func (p plainObserver) Valid() bool          { return p.o.Valid() }

type fakeVisual struct {
	alive   bool
	offset  r2.Vec
	size    r2.Vec
	color   color.NRGBA
	visible bool
}

func (v *fakeVisual) Alive() bool             { return v.alive }
func (v *fakeVisual) Destroy()                { v.alive = false }
func (v *fakeVisual) SetOffset(o r2.Vec)      { v.offset = o }
func (v *fakeVisual) SetSize(s r2.Vec)        { v.size = s }
func (v *fakeVisual) SetColor(c color.NRGBA)  { v.color = c }
func (v *fakeVisual) SetVisible(visible bool) { v.visible = visible }

// sizedVisual additionally reports its natural dimensions.
type sizedVisual struct {
	fakeVisual

	hasFixed  bool
	fixedSize r2.Vec
	bounds    r2.Vec
	preferred r2.Vec
}

func (v *sizedVisual) FixedSize() (r2.Vec, bool) { return v.fixedSize, v.hasFixed }
func (v *sizedVisual) BoundsSize() r2.Vec        { return v.bounds }
func (v *sizedVisual) PreferredSize() r2.Vec     { return v.preferred }

type fakeTemplate struct {
	made []*fakeVisual
}

func (t *fakeTemplate) Instantiate() Visual {
	v := &fakeVisual{alive: true, offset: r2.Vec{X: 99, Y: 99}}
	t.made = append(t.made, v)
	return v
}

func (t *fakeTemplate) destroyed() int {
	n := 0
	for _, v := range t.made {
		if !v.alive {
			n++
		}
	}
	return n
}

type memStore struct {
	bools  map[string]bool
	floats map[string]float64
	reads  int
}

func newMemStore() *memStore {
	return &memStore{bools: map[string]bool{}, floats: map[string]float64{}}
}

func (s *memStore) Bool(key string, def bool) bool {
	s.reads++
	if v, ok := s.bools[key]; ok {
		return v
	}
	return def
}

func (s *memStore) Float(key string, def float64) float64 {
	s.reads++
	if v, ok := s.floats[key]; ok {
		return v
	}
	return def
}

// dyingContact reports alive for the first aliveChecks IsDead calls.
type dyingContact struct {
	fakeContact
	aliveChecks int
}

func (c *dyingContact) IsDead() bool {
	if c.aliveChecks > 0 {
		c.aliveChecks--
		return false
	}
	return true
}
