package game

import (
	"math"
	"sync/atomic"

	"flightradar/radar"

	"gonum.org/v1/gonum/spatial/r3"
)

var lastEntityID atomic.Uint64

// nextEntityID returns a process-wide unique entity handle
func nextEntityID() radar.EntityID {
	return radar.EntityID(lastEntityID.Add(1))
}

// EntityType identifies the type of entity
type EntityType int

const (
	EntityTypePlayer EntityType = iota
	EntityTypeAircraft
	EntityTypeMissile
)

// Entity is an aircraft or a missile. World coordinates are meters with
// X east, Y up and Z north.
type Entity struct {
	id radar.EntityID

	// Pos is the position in world coordinates
	Pos r3.Vec

	// Vel is the velocity in meters per second
	Vel r3.Vec

	// Yaw is the heading in radians; 0 is north, positive turns east
	Yaw float64

	// Speed is the airspeed along the heading
	Speed float64

	// Health points (0 or less means dead)
	Health float64

	// Maximum health
	MaxHealth float64

	// Collision radius in meters
	Radius float64

	// Input provider for behavior (player input or AI)
	Input InputProvider

	Type     EntityType
	ShipType ShipType
	Faction  Faction

	// Whether this entity is still part of the world
	Active bool

	// Time since creation
	Age float64

	// Lifetime in seconds, 0 means unlimited
	Lifetime float64

	// Owner is the launcher of a missile
	Owner *Entity

	// Target is the entity a missile guides on
	Target *Entity

	// TimeSinceLastShot feeds the weapon cooldown; Fired reports whether
	// the weapon was used at all.
	TimeSinceLastShot float64
	Fired             bool
}

// NewAircraft creates an aircraft with stats from its ship type
func NewAircraft(shipType ShipType, faction Faction, pos r3.Vec, yaw float64, input InputProvider) *Entity {
	cfg := GetShipTypeConfig(shipType)
	typ := EntityTypeAircraft
	if shipType == ShipTypePlayer {
		typ = EntityTypePlayer
	}
	e := &Entity{
		id:        nextEntityID(),
		Pos:       pos,
		Yaw:       yaw,
		Speed:     (cfg.MinSpeed + cfg.MaxSpeed) / 2,
		Health:    cfg.Health,
		MaxHealth: cfg.Health,
		Radius:    cfg.Radius,
		Input:     input,
		Type:      typ,
		ShipType:  shipType,
		Faction:   faction,
		Active:    true,
	}
	e.Vel = r3.Scale(e.Speed, headingVec(yaw))
	return e
}

// NewMissile launches a missile from owner guiding on target
func NewMissile(owner, target *Entity, weapon WeaponConfig) *Entity {
	dir := owner.Forward()
	speed := owner.Speed + weapon.LaunchSpeed
	return &Entity{
		id:        nextEntityID(),
		Pos:       r3.Add(owner.Pos, r3.Scale(owner.Radius*2, dir)),
		Vel:       r3.Scale(speed, dir),
		Yaw:       owner.Yaw,
		Speed:     speed,
		Health:    1,
		MaxHealth: 1,
		Radius:    1,
		Type:      EntityTypeMissile,
		ShipType:  owner.ShipType,
		Faction:   owner.Faction,
		Active:    true,
		Lifetime:  weapon.Lifetime,
		Owner:     owner,
		Target:    target,
	}
}

// Update updates the entity based on input and applies movement
func (e *Entity) Update(deltaTime float64) {
	if !e.Active || e.Health <= 0 {
		return
	}

	e.Age += deltaTime
	e.TimeSinceLastShot += deltaTime

	if e.Type != EntityTypeMissile && e.Input != nil {
		cfg := GetShipTypeConfig(e.ShipType)

		turn := clampUnit(e.Input.GetTurn())
		e.Yaw = normalizeAngle(e.Yaw + turn*cfg.TurnRate*deltaTime)

		e.Speed += clampUnit(e.Input.GetThrust()) * cfg.Acceleration * deltaTime
		e.Speed = math.Max(cfg.MinSpeed, math.Min(e.Speed, cfg.MaxSpeed))

		climb := clampUnit(e.Input.GetClimb()) * cfg.ClimbRate
		e.Vel = r3.Add(r3.Scale(e.Speed, headingVec(e.Yaw)), r3.Vec{Y: climb})
	}

	e.Pos = r3.Add(e.Pos, r3.Scale(deltaTime, e.Vel))
}

// Expired reports whether a limited-lifetime entity has run out of time
func (e *Entity) Expired() bool {
	return e.Lifetime > 0 && e.Age >= e.Lifetime
}

// DistanceTo calculates the distance to another entity
func (e *Entity) DistanceTo(other *Entity) float64 {
	return r3.Norm(r3.Sub(other.Pos, e.Pos))
}

// IsColliding checks if this entity is colliding with another entity
func (e *Entity) IsColliding(other *Entity) bool {
	return e.DistanceTo(other) < e.Radius+other.Radius
}

// Radar contact and missile views.

func (e *Entity) ID() radar.EntityID { return e.id }
func (e *Entity) Position() r3.Vec   { return e.Pos }
func (e *Entity) Velocity() r3.Vec   { return e.Vel }
func (e *Entity) IsPlayer() bool     { return e.Type == EntityTypePlayer }
func (e *Entity) IsDead() bool       { return !e.Active || e.Health <= 0 }
func (e *Entity) Valid() bool        { return !e.IsDead() }
func (e *Entity) Tag() string        { return GetShipTypeConfig(e.ShipType).Tag }

func (e *Entity) Kind() (radar.TrackKind, bool) {
	return GetFactionConfig(e.Faction).Kind, true
}

// Forward returns the unit direction of travel. Aircraft point along
// their heading; missiles along their velocity.
func (e *Entity) Forward() r3.Vec {
	if e.Type == EntityTypeMissile {
		if n := r3.Norm(e.Vel); n > 0 {
			return r3.Scale(1/n, e.Vel)
		}
	}
	return headingVec(e.Yaw)
}

func (e *Entity) OwnerID() radar.EntityID {
	if e.Owner == nil {
		return radar.InvalidEntityID
	}
	return e.Owner.ID()
}

// Frame returns the entity as a radar observer frame
func (e *Entity) Frame() radar.ObserverFrame {
	return radar.ObserverFrame{Position: e.Pos, Forward: e.Forward(), Velocity: e.Vel}
}

func headingVec(yaw float64) r3.Vec {
	return r3.Vec{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(v, 1))
}
