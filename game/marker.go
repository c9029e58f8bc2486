package game

import (
	"image/color"

	"flightradar/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// MarkerShape is the vector shape of a marker without a sprite
type MarkerShape int

const (
	MarkerSquare MarkerShape = iota
	MarkerDiamond
	MarkerCircle
)

// Marker is a radar blip drawn by a MarkerLayer. It implements
// radar.Visual and radar.Sizer.
type Marker struct {
	layer  *MarkerLayer
	shape  MarkerShape
	sprite *ebiten.Image

	fixedSize r2.Vec
	hasFixed  bool

	offset  r2.Vec
	size    r2.Vec
	clr     color.NRGBA
	visible bool
	alive   bool
}

func (m *Marker) Alive() bool { return m.alive }

// Destroy removes the marker from its layer
func (m *Marker) Destroy() {
	if !m.alive {
		return
	}
	m.alive = false
	m.layer.remove(m)
}

func (m *Marker) SetOffset(o r2.Vec)      { m.offset = o }
func (m *Marker) SetSize(s r2.Vec)        { m.size = s }
func (m *Marker) SetColor(c color.NRGBA)  { m.clr = c }
func (m *Marker) SetVisible(visible bool) { m.visible = visible }

func (m *Marker) Offset() r2.Vec     { return m.offset }
func (m *Marker) Size() r2.Vec       { return m.size }
func (m *Marker) Color() color.NRGBA { return m.clr }
func (m *Marker) Visible() bool      { return m.visible }

func (m *Marker) FixedSize() (r2.Vec, bool) { return m.fixedSize, m.hasFixed }

func (m *Marker) BoundsSize() r2.Vec {
	if m.sprite == nil {
		return r2.Vec{}
	}
	b := m.sprite.Bounds()
	return r2.Vec{X: float64(b.Dx()), Y: float64(b.Dy())}
}

func (m *Marker) PreferredSize() r2.Vec { return r2.Vec{} }

// MarkerLayer owns the live markers of one radar display
type MarkerLayer struct {
	markers []*Marker
}

// NewMarkerLayer creates an empty layer
func NewMarkerLayer() *MarkerLayer {
	return &MarkerLayer{}
}

// Len returns the number of live markers
func (l *MarkerLayer) Len() int {
	return len(l.markers)
}

// Markers returns the live markers in creation order
func (l *MarkerLayer) Markers() []*Marker {
	return l.markers
}

func (l *MarkerLayer) add(m *Marker) *Marker {
	m.layer = l
	m.alive = true
	l.markers = append(l.markers, m)
	return m
}

func (l *MarkerLayer) remove(m *Marker) {
	for i, o := range l.markers {
		if o == m {
			l.markers = append(l.markers[:i], l.markers[i+1:]...)
			return
		}
	}
}

// Draw renders every visible marker around the display center (cx, cy).
// Radar offsets grow upwards, screen coordinates downwards.
func (l *MarkerLayer) Draw(screen *ebiten.Image, cx, cy float64) {
	for _, m := range l.markers {
		if !m.visible || m.size.X <= 0 || m.size.Y <= 0 {
			continue
		}
		x := cx + m.offset.X
		y := cy - m.offset.Y
		w, h := m.size.X, m.size.Y

		if m.sprite != nil {
			b := m.sprite.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
			op.GeoM.Translate(x-w/2, y-h/2)
			op.ColorScale.ScaleWithColor(m.clr)
			screen.DrawImage(m.sprite, op)
			continue
		}

		switch m.shape {
		case MarkerCircle:
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(w/2), m.clr, true)
		case MarkerDiamond:
			top, bottom := float32(y-h/2), float32(y+h/2)
			left, right := float32(x-w/2), float32(x+w/2)
			fx, fy := float32(x), float32(y)
			vector.StrokeLine(screen, fx, top, right, fy, 2, m.clr, true)
			vector.StrokeLine(screen, right, fy, fx, bottom, 2, m.clr, true)
			vector.StrokeLine(screen, fx, bottom, left, fy, 2, m.clr, true)
			vector.StrokeLine(screen, left, fy, fx, top, 2, m.clr, true)
		default:
			vector.DrawFilledRect(screen, float32(x-w/2), float32(y-h/2), float32(w), float32(h), m.clr, true)
		}
	}
}

// ShapeTemplate builds vector markers. A zero Size leaves sizing to the
// radar's configured default.
type ShapeTemplate struct {
	Layer *MarkerLayer
	Shape MarkerShape
	Size  r2.Vec
}

func (t ShapeTemplate) Instantiate() radar.Visual {
	if t.Layer == nil {
		return nil
	}
	return t.Layer.add(&Marker{
		shape:     t.Shape,
		fixedSize: t.Size,
		hasFixed:  t.Size.X > 0 && t.Size.Y > 0,
	})
}

// SpriteTemplate builds markers drawn from a tinted sprite; their base
// size is the sprite bounds.
type SpriteTemplate struct {
	Layer *MarkerLayer
	Image *ebiten.Image
}

func (t SpriteTemplate) Instantiate() radar.Visual {
	if t.Layer == nil || t.Image == nil {
		return nil
	}
	return t.Layer.add(&Marker{sprite: t.Image})
}
