package game

import (
	"fmt"
	"image/color"

	"flightradar/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Radar geometry constants
const (
	radarHeadingOffset = 8.0
	radarCenterDotSize = 2.0
	radarEdgeMargin    = 4.0
	radarLabelOffsetY  = 16.0
)

var (
	colorRadarPlayer = color.NRGBA{R: 180, G: 255, B: 200, A: 255}
	colorRadarNorth  = nrgba(colornames.Gold)
	colorRadarThreat = nrgba(colornames.Red)
)

// RadarView draws the radar display: backdrop, range ring, heading and
// north cues, the radar's marker layer, and the range and threat readout.
type RadarView struct {
	config Config
	radar  *radar.Radar
	layer  *MarkerLayer
}

// NewRadarView creates a view over r whose markers live in layer
func NewRadarView(config Config, r *radar.Radar, layer *MarkerLayer) *RadarView {
	return &RadarView{config: config, radar: r, layer: layer}
}

// Draw renders the display for the observer. observer may be nil, in
// which case only the backdrop is drawn.
func (v *RadarView) Draw(screen *ebiten.Image, observer *Entity, elapsed float64) {
	cx, cy := v.config.RadarCenter()
	radius := v.config.RadarRadius

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(radius+radarEdgeMargin), v.config.RadarBackdropColor, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius), 1.5, v.config.RadarRingColor, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius/2), 1, v.config.RadarRingColor, true)

	if observer == nil || observer.IsDead() {
		ebitenutil.DebugPrintAt(screen, "NO SIGNAL", int(cx)-27, int(cy)-8)
		return
	}
	frame := observer.Frame()

	// Heading marker. Heading-up displays always point it straight ahead.
	ahead := r2.Vec{Y: radius - radarHeadingOffset}
	if !v.config.RadarRotate {
		ahead = r2.Scale(radius-radarHeadingOffset, rimDirection(frame, r3.Add(frame.Position, frame.Forward), false))
	}
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(cx+ahead.X), float32(cy-ahead.Y), 1.5, v.config.RadarHeadingColor, true)

	if v.config.RadarRotate {
		north := r2.Scale(radius-radarHeadingOffset, rimDirection(frame, r3.Add(frame.Position, r3.Vec{Z: 1}), true))
		ebitenutil.DebugPrintAt(screen, "N", int(cx+north.X)-3, int(cy-north.Y)-8)
		vector.DrawFilledCircle(screen, float32(cx+north.X), float32(cy-north.Y), 2, colorRadarNorth, true)
	}

	v.layer.Draw(screen, cx, cy)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), radarCenterDotSize, colorRadarPlayer, true)

	s := v.radar.Settings()
	label := fmt.Sprintf("RNG %.0fm", s.Range)
	if !s.ShowContacts {
		label += " C-OFF"
	}
	if !s.ShowMissiles {
		label += " M-OFF"
	}
	ebitenutil.DebugPrintAt(screen, label, int(cx-radius), int(cy-radius-radarLabelOffsetY))

	if n := v.radar.ThreatCount(); n > 0 {
		// Blink with the missile markers.
		if radar.PingPong(elapsed*2) > 0.5 {
			vector.DrawFilledRect(screen, float32(cx-radius), float32(cy+radius+6), 74, 16, colorRadarThreat, true)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("MISSILE x%d", n), int(cx-radius)+2, int(cy+radius)+6)
	}
}

// rimDirection returns the unit display direction towards worldPos
func rimDirection(frame radar.ObserverFrame, worldPos r3.Vec, rotate bool) r2.Vec {
	p := radar.Project(frame, worldPos, rotate)
	if n := r2.Norm(p); n > 0 {
		return r2.Scale(1/n, p)
	}
	return r2.Vec{Y: 1}
}
