package game

import (
	"math"
	"testing"

	"flightradar/radar"
	"flightradar/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const testStep = 1.0 / 60

func newTestSim(t *testing.T) (*Sim, *settings.File) {
	t.Helper()
	store := settings.NewMemory()
	s := NewSim(DefaultConfig(), store, &Autopilot{CycleEvery: 1000}, nil, WithSeed(7))
	require.NotNil(t, s.Player())
	return s, store
}

func TestSimTracksWingmen(t *testing.T) {
	s, _ := newTestSim(t)

	s.Step(testStep)

	tracked := s.Radar().TrackedContacts()
	require.Len(t, tracked, DefaultConfig().WingmenCount)
	for _, c := range tracked {
		assert.NotEqual(t, s.Player().ID(), c.ID())
	}
	assert.Equal(t, len(tracked), s.Radar().ContactMarkers())
	assert.Equal(t, s.Radar().ContactMarkers(), s.Markers().Len())
}

func TestSimDetectsIncomingMissile(t *testing.T) {
	s, _ := newTestSim(t)
	player := s.Player()

	bandit := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Add(player.Pos, r3.Vec{Z: 800}), math.Pi, nil)
	s.World().RegisterEntity(bandit)
	s.World().RegisterEntity(NewMissile(bandit, player, GetWeaponConfig(WeaponTypeHomingMissile)))

	s.Step(testStep)

	assert.GreaterOrEqual(t, s.Radar().ThreatCount(), 1)
	assert.GreaterOrEqual(t, s.Radar().MissileMarkers(), 1)
	assert.Equal(t, 1, s.Stats().Missiles)
}

func TestSimIgnoresOwnMissile(t *testing.T) {
	s, _ := newTestSim(t)
	player := s.Player()

	bandit := NewAircraft(ShipTypeInterceptor, FactionEnemy, r3.Add(player.Pos, r3.Vec{Z: 3000}), 0, nil)
	s.World().RegisterEntity(bandit)
	s.World().RegisterEntity(NewMissile(player, bandit, GetWeaponConfig(WeaponTypeHomingMissile)))

	s.Step(testStep)

	assert.Zero(t, s.Radar().ThreatCount())
	assert.Zero(t, s.Radar().MissileMarkers())
}

func TestSimSettingsHideContacts(t *testing.T) {
	s, store := newTestSim(t)
	s.Step(testStep)
	require.NotZero(t, s.Radar().ContactMarkers())

	require.NoError(t, store.Set(radar.KeyShowContacts, false))
	for i := 0; i < 60; i++ {
		s.Step(testStep)
	}

	assert.Zero(t, s.Radar().ContactMarkers())
	assert.False(t, s.Radar().Settings().ShowContacts)
}

func TestSimRadarDisable(t *testing.T) {
	s, _ := newTestSim(t)
	s.Step(testStep)
	require.NotZero(t, s.Markers().Len())

	s.SetRadarEnabled(false)
	assert.Zero(t, s.Markers().Len())
	s.Step(testStep)
	assert.Zero(t, s.Markers().Len())
	assert.False(t, s.RadarEnabled())

	s.SetRadarEnabled(true)
	s.Step(testStep)
	assert.NotZero(t, s.Markers().Len())
}

func TestSimRespawn(t *testing.T) {
	s, _ := newTestSim(t)
	first := s.Player()
	first.Health = 0

	// The autopilot asks to respawn as soon as the player is down.
	s.Step(testStep)
	s.Step(testStep)

	require.NotSame(t, first, s.Player())
	assert.False(t, s.Player().IsDead())
	assert.Equal(t, 1, s.Stats().Losses)
	_, ok := s.World().Get(first.ID())
	assert.False(t, ok)

	s.Step(testStep)
	for _, c := range s.Radar().TrackedContacts() {
		assert.NotEqual(t, s.Player().ID(), c.ID())
	}
}

func TestSimLongRun(t *testing.T) {
	s, _ := newTestSim(t)

	for s.Elapsed() < 90 {
		s.Step(1.0 / 30)
		st := s.Stats()
		require.Equal(t, st.ContactMarkers+st.MissileMarkers, s.Markers().Len())
		require.LessOrEqual(t, st.Threats, st.Missiles)
	}

	st := s.Stats()
	assert.Greater(t, st.Wave, 1)
	assert.Positive(t, st.Aircraft)
}

func TestSimClampsDeltaTime(t *testing.T) {
	s, _ := newTestSim(t)
	s.Step(10)
	assert.InDelta(t, DefaultConfig().MaxDeltaTime, s.Elapsed(), 1e-12)
	s.Step(-1)
	assert.InDelta(t, DefaultConfig().MaxDeltaTime, s.Elapsed(), 1e-12)
}
