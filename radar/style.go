package radar

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Style is the visual state computed for one marker in one tick.
type Style struct {
	Color color.NRGBA

	// SizeMult multiplies the marker's base size.
	SizeMult float64
}

// StyleConfig holds the tunables of the highlight engine.
type StyleConfig struct {
	SizeByDistance bool
	NearSizeMult   float64
	FarSizeMult    float64

	ColorByDistance bool
	NearColor       color.NRGBA
	FarColor        color.NRGBA

	// Current weapon target highlighting. When HighlightOnlyWhenLocked is
	// set the target styling is applied only while the weapon is locked.
	TargetColor             color.NRGBA
	TargetSizeMult          float64
	HighlightOnlyWhenLocked bool

	LockedColor    color.NRGBA
	LockedSizeMult float64

	// Missile markers blink between MissileColorA and MissileColorB.
	MissileColorA color.NRGBA
	MissileColorB color.NRGBA
	BlinkSpeed    float64
}

// DefaultStyleConfig returns the stock radar palette.
func DefaultStyleConfig() StyleConfig {
	red := color.NRGBA(colornames.Red)
	return StyleConfig{
		SizeByDistance: true,
		NearSizeMult:   1.2,
		FarSizeMult:    0.6,

		ColorByDistance: true,
		NearColor:       red,
		FarColor:        color.NRGBA{R: red.R, G: red.G, B: red.B, A: 64},

		TargetColor:    color.NRGBA(colornames.Yellow),
		TargetSizeMult: 1.4,

		LockedColor:    color.NRGBA(colornames.Orangered),
		LockedSizeMult: 1.7,

		MissileColorA: color.NRGBA(colornames.Red),
		MissileColorB: color.NRGBA(colornames.White),
		BlinkSpeed:    4,
	}
}

// Contact computes the style for a contact at normalized distance d.
// markerScale is the user's global marker-size setting.
func (c StyleConfig) Contact(d float64, isTarget, isLocked bool, markerScale float64) Style {
	d = clamp01(d)

	mult := 1.0
	if c.SizeByDistance {
		mult = lerp(c.NearSizeMult, c.FarSizeMult, d)
	}
	col := color.NRGBA(colornames.White)
	if c.ColorByDistance {
		col = LerpColor(c.NearColor, c.FarColor, d)
	}

	if isTarget && (!c.HighlightOnlyWhenLocked || isLocked) {
		col, mult = c.TargetColor, c.TargetSizeMult
	}
	if isTarget && isLocked {
		col, mult = c.LockedColor, c.LockedSizeMult
	}

	return Style{Color: col, SizeMult: mult * markerScale}
}

// Missile computes the blinking style for a threat marker at elapsed time
// t seconds.
func (c StyleConfig) Missile(t, markerScale float64) Style {
	p := PingPong(t * c.BlinkSpeed)
	return Style{
		Color:    LerpColor(c.MissileColorA, c.MissileColorB, p),
		SizeMult: lerp(1.0, 1.3, p) * markerScale,
	}
}

// PingPong maps x onto a triangle wave that rises from 0 to 1 over [0, 1)
// and falls back to 0 over [1, 2).
func PingPong(x float64) float64 {
	p := math.Mod(math.Abs(x), 2)
	if p > 1 {
		return 2 - p
	}
	return p
}

// LerpColor interpolates each non-premultiplied channel of a and b.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(lerp(float64(x), float64(y), t)))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
