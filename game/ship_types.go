package game

import "math"

// ShipType defines different types of aircraft
type ShipType int

const (
	ShipTypePlayer ShipType = iota
	ShipTypeInterceptor
	ShipTypeDrone
	ShipTypeTransport
	ShipTypeWingman
	ShipTypeCount // Total number of ship types
)

// ShipTypeConfig holds configuration for each ship type
type ShipTypeConfig struct {
	Type ShipType
	Name string

	// Tag is the contact tag the radar filter matches against
	Tag string

	MinSpeed     float64 // m/s
	MaxSpeed     float64 // m/s
	Acceleration float64 // m/s^2 at full throttle
	TurnRate     float64 // rad/s at full stick
	ClimbRate    float64 // m/s at full stick

	Health float64
	Radius float64 // meters, used for collisions and rendering

	Weapon WeaponType
	Shape  ShipShape
}

// ShipShape defines the visual shape of a ship
type ShipShape int

const (
	ShipShapeTriangle ShipShape = iota
	ShipShapeDiamond
	ShipShapeSquare
)

// GetShipTypeConfig returns configuration for a ship type
func GetShipTypeConfig(shipType ShipType) ShipTypeConfig {
	switch shipType {
	case ShipTypePlayer:
		return ShipTypeConfig{
			Type:         ShipTypePlayer,
			Name:         "Player",
			Tag:          "player",
			MinSpeed:     120,
			MaxSpeed:     320,
			Acceleration: 40,
			TurnRate:     math.Pi / 5,
			ClimbRate:    60,
			Health:       100,
			Radius:       12,
			Weapon:       WeaponTypeHomingMissile,
			Shape:        ShipShapeTriangle,
		}
	case ShipTypeInterceptor:
		return ShipTypeConfig{
			Type:         ShipTypeInterceptor,
			Name:         "Interceptor",
			Tag:          "bandit",
			MinSpeed:     110,
			MaxSpeed:     280,
			Acceleration: 30,
			TurnRate:     math.Pi / 7,
			ClimbRate:    40,
			Health:       60,
			Radius:       11,
			Weapon:       WeaponTypeHomingMissile,
			Shape:        ShipShapeTriangle,
		}
	case ShipTypeDrone:
		return ShipTypeConfig{
			Type:         ShipTypeDrone,
			Name:         "Drone",
			Tag:          "bandit",
			MinSpeed:     60,
			MaxSpeed:     140,
			Acceleration: 15,
			TurnRate:     math.Pi / 6,
			ClimbRate:    20,
			Health:       30,
			Radius:       6,
			Weapon:       WeaponTypeNone,
			Shape:        ShipShapeDiamond,
		}
	case ShipTypeTransport:
		return ShipTypeConfig{
			Type:         ShipTypeTransport,
			Name:         "Transport",
			Tag:          "civil",
			MinSpeed:     90,
			MaxSpeed:     180,
			Acceleration: 8,
			TurnRate:     math.Pi / 20,
			ClimbRate:    10,
			Health:       200,
			Radius:       25,
			Weapon:       WeaponTypeNone,
			Shape:        ShipShapeSquare,
		}
	case ShipTypeWingman:
		return ShipTypeConfig{
			Type:         ShipTypeWingman,
			Name:         "Wingman",
			Tag:          "friendly",
			MinSpeed:     120,
			MaxSpeed:     300,
			Acceleration: 35,
			TurnRate:     math.Pi / 6,
			ClimbRate:    50,
			Health:       80,
			Radius:       12,
			Weapon:       WeaponTypeNone,
			Shape:        ShipShapeTriangle,
		}
	default:
		return GetShipTypeConfig(ShipTypePlayer)
	}
}
