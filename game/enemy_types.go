package game

import "math/rand"

// EnemyType selects an AI behavior
type EnemyType int

const (
	EnemyTypeInterceptor EnemyType = iota // Chases the player and launches missiles
	EnemyTypeDrone                        // Orbits a patrol point
	EnemyTypeTransport                    // Flies a straight leg, never attacks
	EnemyTypeEscort                       // Holds formation on the player
)

// EnemyTypeConfig holds configuration for each enemy type
type EnemyTypeConfig struct {
	Type     EnemyType
	ShipType ShipType
	Faction  Faction

	// PreferredRange is the distance an attacker tries to hold from its
	// target, in meters.
	PreferredRange float64
}

// GetEnemyTypeConfig returns configuration for an enemy type
func GetEnemyTypeConfig(enemyType EnemyType) EnemyTypeConfig {
	switch enemyType {
	case EnemyTypeInterceptor:
		return EnemyTypeConfig{
			Type:           EnemyTypeInterceptor,
			ShipType:       ShipTypeInterceptor,
			Faction:        FactionEnemy,
			PreferredRange: 2500,
		}
	case EnemyTypeDrone:
		return EnemyTypeConfig{
			Type:     EnemyTypeDrone,
			ShipType: ShipTypeDrone,
			Faction:  FactionEnemy,
		}
	case EnemyTypeTransport:
		return EnemyTypeConfig{
			Type:     EnemyTypeTransport,
			ShipType: ShipTypeTransport,
			Faction:  FactionNeutral,
		}
	case EnemyTypeEscort:
		return EnemyTypeConfig{
			Type:           EnemyTypeEscort,
			ShipType:       ShipTypeWingman,
			Faction:        FactionPlayer,
			PreferredRange: 400,
		}
	default:
		return GetEnemyTypeConfig(EnemyTypeInterceptor)
	}
}

// GetRandomEnemyType returns a random hostile type (weighted towards
// interceptors)
func GetRandomEnemyType(rng *rand.Rand) EnemyType {
	if rng.Float64() < 0.7 {
		return EnemyTypeInterceptor
	}
	return EnemyTypeDrone
}
