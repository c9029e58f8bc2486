package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a top-down viewport onto the X/Z plane. North is up.
type Camera struct {
	X, Z   float64 // Camera position in world coordinates
	Zoom   float64 // Pixels per meter
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height, zoom float64) *Camera {
	return &Camera{
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(p r3.Vec) (float64, float64) {
	sx := (p.X-c.X)*c.Zoom + c.Width/2
	sy := -(p.Z-c.Z)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a point at zero altitude
func (c *Camera) ScreenToWorld(sx, sy float64) r3.Vec {
	return r3.Vec{
		X: (sx-c.Width/2)/c.Zoom + c.X,
		Z: -(sy-c.Height/2)/c.Zoom + c.Z,
	}
}

// Follow eases the camera towards p
func (c *Camera) Follow(p r3.Vec, factor float64) {
	c.X += (p.X - c.X) * factor
	c.Z += (p.Z - c.Z) * factor
}

// Renderer handles rendering of game entities
type Renderer struct {
	camera *Camera
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
	}
}

// Render renders all live entities. target is highlighted when set.
func (r *Renderer) Render(screen *ebiten.Image, world *World, target *Entity, showLabels bool) {
	for _, entity := range world.AllEntities {
		if entity.IsDead() {
			continue
		}
		r.RenderEntity(screen, entity, entity == target, showLabels)
	}
}

// RenderEntity renders a single entity
func (r *Renderer) RenderEntity(screen *ebiten.Image, entity *Entity, isTarget, showLabel bool) {
	sx, sy := r.camera.WorldToScreen(entity.Pos)

	// Skip if outside screen bounds (with margin)
	margin := 100.0
	if sx < -margin || sx > r.camera.Width+margin ||
		sy < -margin || sy > r.camera.Height+margin {
		return
	}

	clr := GetFactionConfig(entity.Faction).Color

	if entity.Type == EntityTypeMissile {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 2, color.NRGBA{R: 255, G: 255, B: 0, A: 255}, true)
		fwd := entity.Forward()
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx-fwd.X*8), float32(sy+fwd.Z*8), 1, clr, true)
		return
	}

	// Aircraft are drawn at a minimum size so they stay visible zoomed out
	size := math.Max(entity.Radius*r.camera.Zoom, 6)

	// Screen up is north, so the heading vector maps to (sin, -cos).
	sin, cos := math.Sincos(entity.Yaw)
	nose := [2]float64{sx + sin*size*1.5, sy - cos*size*1.5}
	left := [2]float64{sx - cos*size - sin*size, sy - sin*size + cos*size}
	right := [2]float64{sx + cos*size - sin*size, sy + sin*size + cos*size}

	vector.StrokeLine(screen, float32(nose[0]), float32(nose[1]), float32(left[0]), float32(left[1]), 2, clr, true)
	vector.StrokeLine(screen, float32(left[0]), float32(left[1]), float32(right[0]), float32(right[1]), 2, clr, true)
	vector.StrokeLine(screen, float32(right[0]), float32(right[1]), float32(nose[0]), float32(nose[1]), 2, clr, true)

	if isTarget {
		vector.StrokeRect(screen, float32(sx-size*2), float32(sy-size*2), float32(size*4), float32(size*4), 1, color.NRGBA{R: 255, G: 255, B: 0, A: 255}, true)
	}

	// Draw health bar for damaged entities
	if entity.Health < entity.MaxHealth {
		barWidth := size * 2
		barHeight := 3.0
		barX := sx - barWidth/2
		barY := sy - size*2 - barHeight - 2

		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{100, 0, 0, 255}, true)
		healthWidth := barWidth * math.Max(entity.Health, 0) / entity.MaxHealth
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(healthWidth), float32(barHeight), color.RGBA{0, 255, 0, 255}, true)
	}

	if showLabel {
		label := fmt.Sprintf("%s %.0f", GetShipTypeConfig(entity.ShipType).Name, entity.Pos.Y)
		ebitenutil.DebugPrintAt(screen, label, int(sx+size*2), int(sy-8))
	}
}
