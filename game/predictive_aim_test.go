package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPredictiveAimStationaryTarget(t *testing.T) {
	target := r3.Vec{X: 100, Z: 900}
	assert.Equal(t, target, PredictiveAim(r3.Vec{}, target, r3.Vec{}, 500))
	assert.Equal(t, target, PredictiveAim(r3.Vec{}, target, r3.Vec{X: 50}, 0))
}

func TestPredictiveAimLeadsMovingTarget(t *testing.T) {
	shooter := r3.Vec{}
	target := r3.Vec{Z: 1000}
	vel := r3.Vec{X: 100}
	const speed = 1000.0

	aim := PredictiveAim(shooter, target, vel, speed)

	// The aim point lies on the target's track and is reached by both at
	// the same time.
	assert.InDelta(t, 1000, aim.Z, 1e-9)
	assert.Greater(t, aim.X, 0.0)
	tTarget := aim.X / vel.X
	tShot := r3.Norm(r3.Sub(aim, shooter)) / speed
	assert.InDelta(t, tTarget, tShot, 0.01)
}

func TestSteerTowards(t *testing.T) {
	north := r3.Vec{Z: 1}
	east := r3.Vec{X: 1}

	assert.Equal(t, east, SteerTowards(north, east, math.Pi))

	got := SteerTowards(north, east, math.Pi/4)
	assert.InDelta(t, math.Sqrt2/2, got.X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, got.Z, 1e-9)
	assert.InDelta(t, 1, r3.Norm(got), 1e-9)

	// Opposite directions still turn, in the horizontal plane.
	got = SteerTowards(north, r3.Vec{Z: -1}, math.Pi/2)
	assert.InDelta(t, 1, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)
}

func TestHeadingTo(t *testing.T) {
	assert.InDelta(t, 0, HeadingTo(r3.Vec{}, r3.Vec{Z: 10}), 1e-12)
	assert.InDelta(t, math.Pi/2, HeadingTo(r3.Vec{}, r3.Vec{X: 10}), 1e-12)
	assert.InDelta(t, -math.Pi/2, HeadingTo(r3.Vec{X: 10}, r3.Vec{}), 1e-12)
}

func TestRotateTowardsTarget(t *testing.T) {
	assert.InDelta(t, 0.1, RotateTowardsTarget(0, 1, 1, 0.1), 1e-12)
	assert.InDelta(t, 1, RotateTowardsTarget(0.95, 1, 1, 0.1), 1e-12)
	// Takes the short way across the wrap.
	assert.InDelta(t, math.Pi, RotateTowardsTarget(math.Pi-0.1, -math.Pi+0.1, 1, 0.1), 1e-9)
}
