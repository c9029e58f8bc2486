package game

import (
	"cmp"
	"math"
	"slices"

	"flightradar/radar"

	"gonum.org/v1/gonum/spatial/r3"
)

// Targeting holds the player's weapon target and lock state. A target is
// locked once it has stayed inside the lock cone and range for LockTime
// seconds.
type Targeting struct {
	LockTime      float64
	LockRange     float64
	LockHalfAngle float64 // radians

	target    radar.EntityID
	lockTimer float64
	locked    bool
}

// NewTargeting creates targeting state using the envelope of weapon
func NewTargeting(weapon WeaponConfig) *Targeting {
	return &Targeting{
		LockTime:      1.5,
		LockRange:     weapon.MaxRange,
		LockHalfAngle: weapon.LaunchHalfCone,
	}
}

// Target returns the current target
func (t *Targeting) Target() (radar.EntityID, bool) {
	return t.target, t.target != radar.InvalidEntityID
}

// Locked reports whether the current target is locked
func (t *Targeting) Locked() bool {
	return t.locked
}

// Clear drops the current target
func (t *Targeting) Clear() {
	t.target = radar.InvalidEntityID
	t.lockTimer = 0
	t.locked = false
}

// Cycle selects the next hostile aircraft by distance from shooter,
// wrapping around. It returns false when there is nothing to select.
func (t *Targeting) Cycle(shooter *Entity, world *World) bool {
	candidates := world.GetEntitiesInRadius(shooter.Pos, t.LockRange*1.5)
	candidates = slices.DeleteFunc(candidates, func(e *Entity) bool {
		return e.Type == EntityTypeMissile || e == shooter || !Hostile(shooter.Faction, e.Faction)
	})
	if len(candidates) == 0 {
		t.Clear()
		return false
	}
	slices.SortFunc(candidates, func(a, b *Entity) int {
		if c := cmp.Compare(shooter.DistanceTo(a), shooter.DistanceTo(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})

	next := candidates[0]
	if i := slices.IndexFunc(candidates, func(e *Entity) bool { return e.ID() == t.target }); i >= 0 {
		next = candidates[(i+1)%len(candidates)]
	}
	t.target = next.ID()
	t.lockTimer = 0
	t.locked = false
	return true
}

// Update advances the lock timer. The target is dropped when it leaves
// the world or dies; the lock is lost when it leaves the envelope.
func (t *Targeting) Update(shooter *Entity, world *World, deltaTime float64) {
	if t.target == radar.InvalidEntityID {
		return
	}
	target, ok := world.Get(t.target)
	if !ok || target.IsDead() || shooter == nil || shooter.IsDead() {
		t.Clear()
		return
	}

	if t.inEnvelope(shooter, target) {
		t.lockTimer += deltaTime
		if t.lockTimer >= t.LockTime {
			t.locked = true
		}
	} else {
		t.lockTimer = 0
		t.locked = false
	}
}

func (t *Targeting) inEnvelope(shooter, target *Entity) bool {
	delta := r3.Sub(target.Pos, shooter.Pos)
	dist := r3.Norm(delta)
	if dist == 0 || dist > t.LockRange {
		return false
	}
	return r3.Dot(shooter.Forward(), r3.Scale(1/dist, delta)) >= math.Cos(t.LockHalfAngle)
}

// pilot presents the player aircraft and its targeting state to the
// radar as a weapon-aware observer.
type pilot struct {
	sim *Sim
}

func (p pilot) ID() radar.EntityID {
	if p.sim.player == nil {
		return radar.InvalidEntityID
	}
	return p.sim.player.ID()
}

func (p pilot) Frame() radar.ObserverFrame { return p.sim.player.Frame() }
func (p pilot) Valid() bool                { return p.sim.player != nil && !p.sim.player.IsDead() }

func (p pilot) CurrentTarget() (radar.EntityID, bool) { return p.sim.targeting.Target() }
func (p pilot) WeaponLocked() bool                    { return p.sim.targeting.Locked() }
