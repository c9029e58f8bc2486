package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CalculatePredictiveAim returns the point a projectile fired from shooter
// at projectileSpeed should fly towards to meet target.
func CalculatePredictiveAim(shooter r3.Vec, target *Entity, projectileSpeed float64) r3.Vec {
	return PredictiveAim(shooter, target.Pos, target.Vel, projectileSpeed)
}

// PredictiveAim calculates the predicted target position accounting for
// target velocity and projectile speed
func PredictiveAim(shooter, target, targetVel r3.Vec, projectileSpeed float64) r3.Vec {
	// If target is not moving, just return current position
	if r3.Norm(targetVel) < 0.1 || projectileSpeed <= 0 {
		return target
	}

	distance := r3.Norm(r3.Sub(target, shooter))
	if distance < 1.0 {
		return target
	}

	// Find time t such that
	// distance(shooter, target + targetVel * t) = projectileSpeed * t,
	// starting from the time to reach the current target position.
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		predicted := r3.Add(target, r3.Scale(t, targetVel))
		predictedDistance := r3.Norm(r3.Sub(predicted, shooter))
		if predictedDistance <= 0 {
			break
		}
		newT := predictedDistance / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			t = newT
			break
		}
		t = newT
	}

	return r3.Add(target, r3.Scale(t, targetVel))
}

// RotateTowardsTarget smoothly rotates a rotation value towards a target angle
// currentRotation: Current rotation in radians
// targetRotation: Desired rotation in radians
// maxAngularVelocity: Maximum rotation speed in radians per second
// deltaTime: Time step in seconds
// Returns the new rotation value
func RotateTowardsTarget(currentRotation, targetRotation, maxAngularVelocity, deltaTime float64) float64 {
	angleDiff := normalizeAngle(targetRotation - currentRotation)

	rotationStep := angleDiff
	maxStep := maxAngularVelocity * deltaTime
	if math.Abs(rotationStep) > maxStep {
		rotationStep = math.Copysign(maxStep, rotationStep)
	}

	return currentRotation + rotationStep
}

// SteerTowards turns the unit vector dir towards the unit vector desired
// by at most maxAngle radians and returns the new unit direction.
func SteerTowards(dir, desired r3.Vec, maxAngle float64) r3.Vec {
	cos := math.Max(-1, math.Min(r3.Dot(dir, desired), 1))
	angle := math.Acos(cos)
	if angle <= maxAngle {
		return desired
	}

	// Component of desired perpendicular to dir. When the two are
	// opposite any perpendicular works; pick one in the horizontal plane.
	perp := r3.Sub(desired, r3.Scale(cos, dir))
	if r3.Norm(perp) < 1e-9 {
		perp = r3.Vec{X: dir.Z, Z: -dir.X}
		if r3.Norm(perp) < 1e-9 {
			perp = r3.Vec{X: 1}
		}
	}
	perp = r3.Unit(perp)

	return r3.Unit(r3.Add(r3.Scale(math.Cos(maxAngle), dir), r3.Scale(math.Sin(maxAngle), perp)))
}

// HeadingTo returns the yaw that points from from towards to
func HeadingTo(from, to r3.Vec) float64 {
	return math.Atan2(to.X-from.X, to.Z-from.Z)
}
