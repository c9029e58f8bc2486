package game

import (
	"image/color"

	"flightradar/radar"

	"golang.org/x/image/colornames"
)

// Faction represents which side an entity belongs to
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionNeutral
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionNeutral:
		return "neutral"
	}
	return "unknown"
}

// FactionConfig holds configuration for each faction
type FactionConfig struct {
	Faction Faction
	Color   color.NRGBA
	Kind    radar.TrackKind
}

var (
	// FactionConfigs holds configuration for each faction
	FactionConfigs = map[Faction]FactionConfig{
		FactionPlayer: {
			Faction: FactionPlayer,
			Color:   nrgba(colornames.Lime),
			Kind:    radar.KindFriendly,
		},
		FactionEnemy: {
			Faction: FactionEnemy,
			Color:   nrgba(colornames.Red),
			Kind:    radar.KindEnemy,
		},
		FactionNeutral: {
			Faction: FactionNeutral,
			Color:   nrgba(colornames.Khaki),
			Kind:    radar.KindNeutral,
		},
	}
)

// GetFactionConfig returns configuration for a faction
func GetFactionConfig(faction Faction) FactionConfig {
	if config, ok := FactionConfigs[faction]; ok {
		return config
	}
	return FactionConfig{
		Faction: faction,
		Color:   nrgba(colornames.Orange),
		Kind:    radar.KindNeutral,
	}
}

// Hostile reports whether a and b shoot at each other. Neutrals are never
// hostile.
func Hostile(a, b Faction) bool {
	if a == FactionNeutral || b == FactionNeutral {
		return false
	}
	return a != b
}
