package radar

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// fallbackMarkerSize is used when neither the visual nor the configuration
// yields a usable marker size.
var fallbackMarkerSize = r2.Vec{X: 10, Y: 10}

// Heading returns the observer's yaw in radians, measured from +Z towards
// +X. A vertical or zero forward vector yields 0.
func (f ObserverFrame) Heading() float64 {
	if f.Forward.X == 0 && f.Forward.Z == 0 {
		return 0
	}
	return math.Atan2(f.Forward.X, f.Forward.Z)
}

// Project maps a world position into the radar plane relative to the
// observer. The vertical component is discarded. When rotateWithObserver is
// set the result is expressed in the observer's heading frame so that
// straight ahead is +Y (display "up") and right is +X; otherwise world X/Z
// are used directly. The returned vector holds meters, with the world Z
// axis stored in Y.
func Project(frame ObserverFrame, worldPos r3.Vec, rotateWithObserver bool) r2.Vec {
	d := r3.Sub(worldPos, frame.Position)
	x, z := d.X, d.Z

	if rotateWithObserver {
		h := frame.Heading()
		sin, cos := math.Sincos(h)
		x, z = x*cos-z*sin, x*sin+z*cos
	}
	return r2.Vec{X: x, Y: z}
}

// ToDisplayOffset scales a projected vector (meters) into radar display
// pixels. Contacts beyond range are either pinned to the rim when
// clampToEdge is set, or reported as not visible. A non-positive radius
// means there is no display area, so nothing is visible.
func ToDisplayOffset(v r2.Vec, rangeMeters, radiusPixels float64, clampToEdge bool) (r2.Vec, bool) {
	if radiusPixels <= 0 {
		return r2.Vec{}, false
	}
	rng := math.Max(1, rangeMeters)
	scale := radiusPixels / rng

	if r2.Norm(v) > rng {
		if !clampToEdge {
			return r2.Vec{}, false
		}
		v = r2.Scale(rng, r2.Unit(v))
	}
	return r2.Scale(scale, v), true
}

// NormalizedDistance returns dist/range clamped to [0, 1].
func NormalizedDistance(dist, rangeMeters float64) float64 {
	return clamp01(dist / math.Max(1, rangeMeters))
}

// ResolveBaseSize determines a marker's natural, unscaled size. Visuals may
// come from a user template of unknown layout or from a generated default
// shape, so several sources are tried in order: an explicit fixed size, the
// current bounds, the preferred layout size, the configured default, and
// finally a 10x10 fallback.
func ResolveBaseSize(v Visual, configuredDefault r2.Vec) r2.Vec {
	if s, ok := v.(Sizer); ok {
		if fixed, ok := s.FixedSize(); ok && nonZero(fixed) {
			return fixed
		}
		if b := s.BoundsSize(); nonZero(b) {
			return b
		}
		if p := s.PreferredSize(); nonZero(p) {
			return p
		}
	}
	if nonZero(configuredDefault) {
		return configuredDefault
	}
	return fallbackMarkerSize
}

func nonZero(v r2.Vec) bool {
	return v.X > 0 && v.Y > 0
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
