package radar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func TestProject(t *testing.T) {
	t.Run("drops vertical component", func(t *testing.T) {
		frame := ObserverFrame{Position: r3.Vec{X: 10, Y: 500, Z: 20}, Forward: r3.Vec{Z: 1}}
		p := Project(frame, r3.Vec{X: 110, Y: -3000, Z: 220}, false)
		assert.InDelta(t, 100, p.X, eps)
		assert.InDelta(t, 200, p.Y, eps)
	})

	t.Run("world aligned ignores heading", func(t *testing.T) {
		frame := ObserverFrame{Forward: r3.Vec{X: 1}}
		p := Project(frame, r3.Vec{X: 1000}, false)
		assert.InDelta(t, 1000, p.X, eps)
		assert.InDelta(t, 0, p.Y, eps)
	})

	t.Run("heading locked puts target ahead on +Y", func(t *testing.T) {
		frame := ObserverFrame{Forward: r3.Vec{X: 1}}
		p := Project(frame, r3.Vec{X: 1000}, true)
		assert.InDelta(t, 0, p.X, 1e-6)
		assert.InDelta(t, 1000, p.Y, 1e-6)
	})

	t.Run("heading locked right side", func(t *testing.T) {
		// Facing +X, the observer's right is -Z.
		frame := ObserverFrame{Forward: r3.Vec{X: 1}}
		p := Project(frame, r3.Vec{Z: -500}, true)
		assert.InDelta(t, 500, p.X, 1e-6)
		assert.InDelta(t, 0, p.Y, 1e-6)
	})

	t.Run("pitch does not affect heading", func(t *testing.T) {
		frame := ObserverFrame{Forward: r3.Vec{Y: 1, Z: 1}}
		p := Project(frame, r3.Vec{X: 300, Z: 400}, true)
		assert.InDelta(t, 300, p.X, 1e-6)
		assert.InDelta(t, 400, p.Y, 1e-6)
	})

	t.Run("rotation preserves distance", func(t *testing.T) {
		frame := ObserverFrame{Forward: r3.Vec{X: 0.3, Z: -0.8}}
		p := Project(frame, r3.Vec{X: 300, Y: 50, Z: 400}, true)
		assert.InDelta(t, 500, r2.Norm(p), 1e-6)
	})
}

func TestToDisplayOffset(t *testing.T) {
	const rng, radius = 2000.0, 100.0

	t.Run("scenario contact at half range", func(t *testing.T) {
		off, ok := ToDisplayOffset(r2.Vec{X: 1000}, rng, radius, false)
		assert.True(t, ok)
		assert.InDelta(t, 50, off.X, eps)
		assert.InDelta(t, 0, off.Y, eps)
		assert.InDelta(t, 0.5, NormalizedDistance(1000, rng), eps)
	})

	t.Run("within range scales linearly", func(t *testing.T) {
		for _, d := range []float64{0, 1, 250, 999.5, 1500, 1999.9} {
			for _, clamp := range []bool{false, true} {
				v := r2.Scale(d, r2.Unit(r2.Vec{X: 3, Y: -4}))
				if d == 0 {
					v = r2.Vec{}
				}
				off, ok := ToDisplayOffset(v, rng, radius, clamp)
				assert.True(t, ok)
				assert.InDelta(t, d*radius/rng, r2.Norm(off), 1e-6, "d=%v clamp=%v", d, clamp)
			}
		}
	})

	t.Run("beyond range clamps to rim", func(t *testing.T) {
		for _, d := range []float64{2000.001, 2500, 1e6} {
			v := r2.Scale(d, r2.Unit(r2.Vec{X: -1, Y: 2}))
			off, ok := ToDisplayOffset(v, rng, radius, true)
			assert.True(t, ok)
			assert.InDelta(t, radius, r2.Norm(off), 1e-6)
			// Direction is preserved.
			assert.InDelta(t, 0, off.X*v.Y-off.Y*v.X, 1e-3)
		}
	})

	t.Run("beyond range hidden without clamp", func(t *testing.T) {
		_, ok := ToDisplayOffset(r2.Vec{X: 2500}, rng, radius, false)
		assert.False(t, ok)
	})

	t.Run("degenerate range and radius", func(t *testing.T) {
		off, ok := ToDisplayOffset(r2.Vec{X: 0.5}, 0, radius, false)
		assert.True(t, ok)
		assert.InDelta(t, 50, off.X, eps)

		_, ok = ToDisplayOffset(r2.Vec{X: 5}, -10, radius, false)
		assert.False(t, ok)

		_, ok = ToDisplayOffset(r2.Vec{X: 1}, rng, 0, true)
		assert.False(t, ok)
	})
}

func TestNormalizedDistance(t *testing.T) {
	assert.Equal(t, 0.0, NormalizedDistance(-5, 100))
	assert.Equal(t, 1.0, NormalizedDistance(500, 100))
	assert.InDelta(t, 0.25, NormalizedDistance(25, 100), eps)
	assert.Equal(t, 1.0, NormalizedDistance(5, 0))
	assert.False(t, math.IsNaN(NormalizedDistance(math.NaN(), 100)))
}

func TestResolveBaseSize(t *testing.T) {
	def := r2.Vec{X: 16, Y: 16}

	cases := []struct {
		name string
		v    Visual
		def  r2.Vec
		want r2.Vec
	}{
		{
			name: "fixed size wins",
			v:    &sizedVisual{hasFixed: true, fixedSize: r2.Vec{X: 8, Y: 6}, bounds: r2.Vec{X: 20, Y: 20}},
			def:  def,
			want: r2.Vec{X: 8, Y: 6},
		},
		{
			name: "zero fixed size falls through to bounds",
			v:    &sizedVisual{hasFixed: true, bounds: r2.Vec{X: 20, Y: 14}},
			def:  def,
			want: r2.Vec{X: 20, Y: 14},
		},
		{
			name: "stretched visual uses bounds",
			v:    &sizedVisual{fixedSize: r2.Vec{X: 8, Y: 6}, bounds: r2.Vec{X: 20, Y: 14}},
			def:  def,
			want: r2.Vec{X: 20, Y: 14},
		},
		{
			name: "preferred layout size",
			v:    &sizedVisual{preferred: r2.Vec{X: 5, Y: 7}},
			def:  def,
			want: r2.Vec{X: 5, Y: 7},
		},
		{
			name: "configured default",
			v:    &sizedVisual{},
			def:  def,
			want: def,
		},
		{
			name: "visual without sizer uses default",
			v:    &fakeVisual{},
			def:  def,
			want: def,
		},
		{
			name: "hardcoded fallback",
			v:    &fakeVisual{},
			want: r2.Vec{X: 10, Y: 10},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ResolveBaseSize(c.v, c.def))
		})
	}
}
