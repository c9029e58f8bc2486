package game

import (
	"image/color"

	"flightradar/radar"

	"golang.org/x/image/colornames"
)

// Config holds game configuration constants
type Config struct {
	// WorldRadius bounds the playable area around the origin, in meters.
	// Aircraft that leave it are turned back by the AI; missiles are
	// removed.
	WorldRadius float64

	// MinAltitude and MaxAltitude clamp aircraft altitude in meters
	MinAltitude float64
	MaxAltitude float64

	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// PixelsPerMeter is the initial camera zoom
	PixelsPerMeter float64

	// MaxDeltaTime clamps a frame's simulation step in seconds
	MaxDeltaTime float64

	// Wave spawning
	FirstWaveSize   int
	WaveCooldown    float64
	WaveSpawnDelay  float64
	SpawnMinDist    float64
	SpawnMaxDist    float64
	NeutralsPerWave int
	WingmenCount    int

	// Radar HUD placement and behavior
	RadarRadius        float64
	RadarMargin        float64
	RadarRotate        bool
	RadarClampToEdge   bool
	RadarRescan        float64
	RadarRangeStep     float64
	RadarMinRange      float64
	RadarMaxRange      float64
	RadarMarkerSize    float64
	RadarFilter        radar.ContactFilter
	BackgroundColor    color.NRGBA
	RadarBackdropColor color.NRGBA
	RadarRingColor     color.NRGBA
	RadarHeadingColor  color.NRGBA
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		WorldRadius:    40000,
		MinAltitude:    200,
		MaxAltitude:    12000,
		ScreenWidth:    1024,
		ScreenHeight:   768,
		PixelsPerMeter: 0.08,
		MaxDeltaTime:   0.1,

		FirstWaveSize:   3,
		WaveCooldown:    20,
		WaveSpawnDelay:  1.5,
		SpawnMinDist:    3000,
		SpawnMaxDist:    7000,
		NeutralsPerWave: 1,
		WingmenCount:    2,

		RadarRadius:      110,
		RadarMargin:      24,
		RadarRotate:      true,
		RadarClampToEdge: true,
		RadarRescan:      radar.DefaultRescanInterval,
		RadarRangeStep:   500,
		RadarMinRange:    500,
		RadarMaxRange:    10000,
		RadarMarkerSize:  10,

		BackgroundColor:    color.NRGBA{R: 3, G: 5, B: 16, A: 255},
		RadarBackdropColor: color.NRGBA{R: 10, G: 16, B: 32, A: 230},
		RadarRingColor:     color.NRGBA{R: 24, G: 48, B: 96, A: 255},
		RadarHeadingColor:  nrgba(colornames.Lightskyblue),
	}
}

// RadarCenter returns the screen position of the radar display, anchored
// to the bottom-right corner.
func (c Config) RadarCenter() (float64, float64) {
	return float64(c.ScreenWidth) - c.RadarRadius - c.RadarMargin,
		float64(c.ScreenHeight) - c.RadarRadius - c.RadarMargin
}

// RadarConfig derives the radar engine configuration. Templates are set
// by the caller.
func (c Config) RadarConfig() radar.Config {
	rc := radar.DefaultConfig()
	rc.RadiusPixels = c.RadarRadius
	rc.RotateWithObserver = c.RadarRotate
	rc.ClampToEdge = c.RadarClampToEdge
	rc.RescanInterval = c.RadarRescan
	rc.Filter = c.RadarFilter
	rc.DefaultMarkerSize.X = c.RadarMarkerSize
	rc.DefaultMarkerSize.Y = c.RadarMarkerSize
	return rc
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
