package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestWorldSources(t *testing.T) {
	w := NewWorld(DefaultConfig())
	player := NewAircraft(ShipTypePlayer, FactionPlayer, r3.Vec{Y: 3000}, 0, nil)
	bandit := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Vec{Y: 3000, Z: 1000}, 0, nil)
	w.RegisterEntity(player)
	w.RegisterEntity(bandit)
	w.RegisterEntity(bandit)

	missile := NewMissile(bandit, player, GetWeaponConfig(WeaponTypeHomingMissile))
	w.RegisterEntity(missile)

	assert.Equal(t, 3, w.Len())
	assert.Len(t, w.Contacts(), 2)
	require.Len(t, w.Missiles(), 1)
	assert.Equal(t, missile.ID(), w.Missiles()[0].ID())
	assert.Same(t, player, w.FindPlayer())

	got, ok := w.Get(bandit.ID())
	require.True(t, ok)
	assert.Same(t, bandit, got)
}

func TestWorldContactsReturnsFreshSlice(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.RegisterEntity(NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{}, 0, nil))

	first := w.Contacts()
	w.RegisterEntity(NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{X: 100}, 0, nil))
	second := w.Contacts()

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestWorldRemoveDead(t *testing.T) {
	w := NewWorld(DefaultConfig())
	a := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{}, 0, nil)
	b := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{X: 100}, 0, nil)
	w.RegisterEntity(a)
	w.RegisterEntity(b)

	a.Health = 0
	removed := w.RemoveDead()

	require.Len(t, removed, 1)
	assert.Same(t, a, removed[0])
	assert.False(t, a.Active)
	assert.Equal(t, 1, w.Len())
	_, ok := w.Get(a.ID())
	assert.False(t, ok)
	assert.Nil(t, w.FindPlayer())
}

func TestWorldEntitiesInRadius(t *testing.T) {
	w := NewWorld(DefaultConfig())
	near := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{X: 50}, 0, nil)
	far := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{X: 500}, 0, nil)
	dead := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{X: 10}, 0, nil)
	dead.Health = 0
	for _, e := range []*Entity{near, far, dead} {
		w.RegisterEntity(e)
	}

	got := w.GetEntitiesInRadius(r3.Vec{}, 100)
	require.Len(t, got, 1)
	assert.Same(t, near, got[0])
}

func TestWorldUnregister(t *testing.T) {
	w := NewWorld(DefaultConfig())
	a := NewAircraft(ShipTypeDrone, FactionEnemy, r3.Vec{}, 0, nil)
	w.RegisterEntity(a)
	w.UnregisterEntity(a)
	w.UnregisterEntity(a)

	assert.Zero(t, w.Len())
	assert.Empty(t, w.Contacts())
}
