package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// markerImage draws a white chevron pointing up with a one pixel dark
// outline. It is tinted per marker at draw time.
func markerImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	fill := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	outline := color.NRGBA{A: 255}

	centerX := float64(width) / 2
	top := float64(height) / 6
	bottom := float64(height) * 5 / 6
	span := bottom - top

	for y := 0; y < height; y++ {
		fy := float64(y) + 0.5
		if fy < top || fy > bottom {
			continue
		}
		// Half width grows linearly from the tip to the base.
		edgeX := float64(width) / 2 * (fy - top) / span
		for x := 0; x < width; x++ {
			relX := math.Abs(float64(x) + 0.5 - centerX)
			switch {
			case relX < edgeX-1:
				img.SetNRGBA(x, y, fill)
			case relX < edgeX:
				img.SetNRGBA(x, y, outline)
			}
		}
	}
	return img
}

// NewMarkerSprite returns the contact marker sprite
func NewMarkerSprite(size int) *ebiten.Image {
	return ebiten.NewImageFromImage(markerImage(size, size))
}
