package game

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Detonation records a missile that exploded this frame. Victim is nil
// when the missile self-destructed.
type Detonation struct {
	Missile *Entity
	Victim  *Entity
}

// CollisionSystem handles missile fuzing and aircraft separation
type CollisionSystem struct {
	world *World
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(world *World) *CollisionSystem {
	return &CollisionSystem{
		world: world,
	}
}

// CheckCollisions detonates missiles whose proximity fuse triggers and
// pushes overlapping aircraft apart.
func (c *CollisionSystem) CheckCollisions() []Detonation {
	var detonations []Detonation

	for _, missile := range c.world.AllEntities {
		if missile.Type != EntityTypeMissile || missile.IsDead() {
			continue
		}

		if missile.Expired() || r3.Norm(r3.Vec{X: missile.Pos.X, Z: missile.Pos.Z}) > c.world.Config.WorldRadius*1.5 {
			missile.Health = 0
			detonations = append(detonations, Detonation{Missile: missile})
			continue
		}

		weapon := GetWeaponConfig(GetShipTypeConfig(missile.ShipType).Weapon)
		for _, other := range c.world.GetEntitiesInRadius(missile.Pos, weapon.FuseRadius+50) {
			if !c.fuses(missile, other, weapon) {
				continue
			}
			c.HandleDetonation(missile, other, weapon)
			detonations = append(detonations, Detonation{Missile: missile, Victim: other})
			break
		}
	}

	aircraft := c.world.AllEntities
	for i, e1 := range aircraft {
		if e1.Type == EntityTypeMissile || e1.IsDead() {
			continue
		}
		for _, e2 := range aircraft[i+1:] {
			if e2.Type == EntityTypeMissile || e2.IsDead() {
				continue
			}
			if e1.IsColliding(e2) {
				c.PushApart(e1, e2)
			}
		}
	}

	return detonations
}

func (c *CollisionSystem) fuses(missile, other *Entity, weapon WeaponConfig) bool {
	if other == missile || other.Type == EntityTypeMissile || other == missile.Owner {
		return false
	}
	// A guided missile only fuses on its target; an unguided one on any
	// hostile aircraft.
	if missile.Target != nil && !missile.Target.IsDead() && other != missile.Target {
		return false
	}
	if (missile.Target == nil || missile.Target.IsDead()) && !Hostile(missile.Faction, other.Faction) {
		return false
	}
	return missile.DistanceTo(other) <= weapon.FuseRadius+other.Radius
}

// HandleDetonation applies missile damage to target
func (c *CollisionSystem) HandleDetonation(missile, target *Entity, weapon WeaponConfig) {
	target.Health -= weapon.Damage
	missile.Health = 0
}

// PushApart pushes two entities apart to resolve collision
func (c *CollisionSystem) PushApart(e1, e2 *Entity) {
	delta := r3.Sub(e2.Pos, e1.Pos)
	distance := r3.Norm(delta)

	var dir r3.Vec
	if distance == 0 {
		// Entities are exactly on top of each other, separate sideways
		dir = r3.Vec{X: 1}
	} else {
		dir = r3.Scale(1/distance, delta)
	}

	overlap := (e1.Radius + e2.Radius) - distance
	if overlap > 0 {
		separation := overlap * 0.5
		e1.Pos = r3.Sub(e1.Pos, r3.Scale(separation, dir))
		e2.Pos = r3.Add(e2.Pos, r3.Scale(separation, dir))
	}
}
