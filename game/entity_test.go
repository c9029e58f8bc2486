package game

import (
	"math"
	"testing"

	"flightradar/radar"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ radar.Contact  = (*Entity)(nil)
	_ radar.Missile  = (*Entity)(nil)
	_ radar.Observer = (*Entity)(nil)

	_ radar.WeaponObserver = pilot{}
)

func TestEntityHeadingMatchesRadarFrame(t *testing.T) {
	for _, yaw := range []float64{0, math.Pi / 2, -math.Pi / 3, 3} {
		e := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{}, yaw, nil)
		assert.InDelta(t, yaw, e.Frame().Heading(), 1e-9, "yaw %v", yaw)
	}

	north := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{}, 0, nil)
	assert.InDelta(t, 1, north.Forward().Z, 1e-12)
	east := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{}, math.Pi/2, nil)
	assert.InDelta(t, 1, east.Forward().X, 1e-12)
}

func TestEntityRadarView(t *testing.T) {
	player := NewAircraft(ShipTypePlayer, FactionPlayer, r3.Vec{}, 0, nil)
	bandit := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{Z: 1000}, 0, nil)
	civil := NewAircraft(ShipTypeTransport, FactionNeutral, r3.Vec{X: 1000}, 0, nil)

	assert.True(t, player.IsPlayer())
	assert.False(t, bandit.IsPlayer())
	assert.NotEqual(t, player.ID(), bandit.ID())

	kind, ok := bandit.Kind()
	assert.True(t, ok)
	assert.Equal(t, radar.KindEnemy, kind)
	kind, _ = civil.Kind()
	assert.Equal(t, radar.KindNeutral, kind)
	assert.Equal(t, "bandit", bandit.Tag())
	assert.Equal(t, "civil", civil.Tag())

	assert.Equal(t, radar.InvalidEntityID, bandit.OwnerID())
	m := NewMissile(bandit, player, GetWeaponConfig(WeaponTypeHomingMissile))
	assert.Equal(t, bandit.ID(), m.OwnerID())

	bandit.Health = 0
	assert.True(t, bandit.IsDead())
	assert.False(t, bandit.Valid())
}

func TestMissileForwardFollowsVelocity(t *testing.T) {
	owner := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{}, 0, nil)
	m := NewMissile(owner, nil, GetWeaponConfig(WeaponTypeHomingMissile))

	m.Vel = r3.Vec{X: 3, Y: 4}
	assert.InDelta(t, 0.6, m.Forward().X, 1e-12)
	assert.InDelta(t, 0.8, m.Forward().Y, 1e-12)
}

func TestEntityUpdateIntegratesPosition(t *testing.T) {
	e := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{Y: 1000}, math.Pi/2, nil)
	speed := e.Speed

	e.Update(2)

	assert.InDelta(t, 2*speed, e.Pos.X, 1e-9)
	assert.InDelta(t, 1000, e.Pos.Y, 1e-9)
	assert.InDelta(t, 0, e.Pos.Z, 1e-9)
	assert.Equal(t, 2.0, e.Age)
}

func TestEntityUpdateAppliesInput(t *testing.T) {
	cfg := GetShipTypeConfig(ShipTypeInterceptor)
	ai := NewAIInputWithType(EnemyTypeInterceptor)
	ai.DesiredTurn = 1
	ai.DesiredClimb = 1
	e := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{Y: 1000}, 0, ai)

	e.Update(0.5)

	assert.InDelta(t, cfg.TurnRate*0.5, e.Yaw, 1e-9)
	assert.InDelta(t, cfg.ClimbRate, e.Vel.Y, 1e-9)
}

func TestMissileExpires(t *testing.T) {
	owner := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{}, 0, nil)
	m := NewMissile(owner, nil, GetWeaponConfig(WeaponTypeHomingMissile))

	assert.False(t, m.Expired())
	m.Age = m.Lifetime
	assert.True(t, m.Expired())
}
