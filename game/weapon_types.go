package game

import "math"

// WeaponType defines different types of weapons
type WeaponType int

const (
	WeaponTypeNone WeaponType = iota
	WeaponTypeHomingMissile
)

// WeaponConfig holds configuration for each weapon type
type WeaponConfig struct {
	Type     WeaponType
	Damage   float64
	Cooldown float64

	LaunchSpeed  float64 // m/s added to the launcher's speed
	MaxSpeed     float64 // m/s
	Acceleration float64 // m/s^2 while the motor burns
	TurnRate     float64 // rad/s
	Lifetime     float64 // seconds before self-destruct
	FuseRadius   float64 // proximity fuse in meters

	// Launch envelope
	MaxRange       float64
	LaunchHalfCone float64 // radians off the nose
}

// GetWeaponConfig returns configuration for a weapon type
func GetWeaponConfig(weaponType WeaponType) WeaponConfig {
	switch weaponType {
	case WeaponTypeHomingMissile:
		return WeaponConfig{
			Type:           WeaponTypeHomingMissile,
			Damage:         45,
			Cooldown:       4,
			LaunchSpeed:    60,
			MaxSpeed:       700,
			Acceleration:   250,
			TurnRate:       math.Pi / 2,
			Lifetime:       14,
			FuseRadius:     30,
			MaxRange:       4000,
			LaunchHalfCone: math.Pi / 6,
		}
	default:
		return WeaponConfig{Type: WeaponTypeNone}
	}
}

// CanShoot checks if a weapon is ready to fire based on time since last shot
// Returns true if the weapon hasn't been fired yet or if enough time has passed
func (wc WeaponConfig) CanShoot(timeSinceLastShot float64, hasBeenFired bool) bool {
	if wc.Type == WeaponTypeNone {
		return false
	}
	if !hasBeenFired {
		return true
	}
	return timeSinceLastShot >= wc.Cooldown
}
