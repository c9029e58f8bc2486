package radar

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactStyleDistanceFalloff(t *testing.T) {
	cfg := DefaultStyleConfig()
	cfg.NearSizeMult, cfg.FarSizeMult = 2, 1
	cfg.NearColor = color.NRGBA{R: 255, A: 255}
	cfg.FarColor = color.NRGBA{R: 255, A: 0}

	t.Run("size multiplier at half range", func(t *testing.T) {
		st := cfg.Contact(0.5, false, false, 1)
		assert.InDelta(t, 1.5, st.SizeMult, eps)
	})

	t.Run("nearer contact is more opaque", func(t *testing.T) {
		near := cfg.Contact(0.1, false, false, 1)
		far := cfg.Contact(0.9, false, false, 1)
		assert.Greater(t, near.Color.A, far.Color.A)
		assert.Equal(t, uint8(255), near.Color.R)
		assert.Equal(t, uint8(255), far.Color.R)
	})

	t.Run("distance is clamped", func(t *testing.T) {
		assert.Equal(t, cfg.Contact(1, false, false, 1), cfg.Contact(3, false, false, 1))
		assert.Equal(t, cfg.Contact(0, false, false, 1), cfg.Contact(-1, false, false, 1))
	})

	t.Run("falloff disabled", func(t *testing.T) {
		flat := cfg
		flat.SizeByDistance = false
		flat.ColorByDistance = false
		st := flat.Contact(0.8, false, false, 1)
		assert.Equal(t, 1.0, st.SizeMult)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, st.Color)
	})

	t.Run("global marker size", func(t *testing.T) {
		st := cfg.Contact(0, false, false, 0.5)
		assert.InDelta(t, 1.0, st.SizeMult, eps)
	})
}

func TestContactStyleHighlight(t *testing.T) {
	cfg := DefaultStyleConfig()
	base := cfg.Contact(0.3, false, false, 1)

	cases := []struct {
		name       string
		onlyLocked bool
		isTarget   bool
		locked     bool
		wantColor  color.NRGBA
		wantMult   float64
	}{
		{"not target", false, false, false, base.Color, base.SizeMult},
		{"not target but weapon locked elsewhere", false, false, true, base.Color, base.SizeMult},
		{"target", false, true, false, cfg.TargetColor, cfg.TargetSizeMult},
		{"target locked", false, true, true, cfg.LockedColor, cfg.LockedSizeMult},
		{"target gated on lock, unlocked", true, true, false, base.Color, base.SizeMult},
		{"target gated on lock, locked", true, true, true, cfg.LockedColor, cfg.LockedSizeMult},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc := cfg
			sc.HighlightOnlyWhenLocked = c.onlyLocked
			st := sc.Contact(0.3, c.isTarget, c.isTarget && c.locked, 1)
			assert.Equal(t, c.wantColor, st.Color)
			assert.InDelta(t, c.wantMult, st.SizeMult, eps)
		})
	}

	t.Run("highlight scaled by marker size", func(t *testing.T) {
		st := cfg.Contact(0.3, true, true, 2)
		assert.InDelta(t, cfg.LockedSizeMult*2, st.SizeMult, eps)
	})
}

func TestMissileStyleBlink(t *testing.T) {
	cfg := DefaultStyleConfig()
	cfg.BlinkSpeed = 1
	cfg.MissileColorA = color.NRGBA{R: 255, A: 255}
	cfg.MissileColorB = color.NRGBA{R: 0, A: 255}

	start := cfg.Missile(0, 1)
	assert.Equal(t, cfg.MissileColorA, start.Color)
	assert.InDelta(t, 1.0, start.SizeMult, eps)

	peak := cfg.Missile(1, 1)
	assert.Equal(t, cfg.MissileColorB, peak.Color)
	assert.InDelta(t, 1.3, peak.SizeMult, eps)

	mid := cfg.Missile(0.5, 2)
	assert.InDelta(t, 2.3, mid.SizeMult, eps)

	// Period of two cycles of the oscillator.
	assert.Equal(t, cfg.Missile(0.25, 1), cfg.Missile(2.25, 1))
	assert.Equal(t, cfg.Missile(0.25, 1), cfg.Missile(1.75, 1))
}

func TestPingPong(t *testing.T) {
	for _, c := range []struct{ in, want float64 }{
		{0, 0}, {0.25, 0.25}, {1, 1}, {1.5, 0.5}, {2, 0}, {3.75, 0.25}, {-0.5, 0.5},
	} {
		assert.InDelta(t, c.want, PingPong(c.in), eps, "PingPong(%v)", c.in)
	}
}

func TestLerpColor(t *testing.T) {
	a := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.NRGBA{R: 100, G: 100, B: 0, A: 55}
	assert.Equal(t, a, LerpColor(a, b, 0))
	assert.Equal(t, b, LerpColor(a, b, 1))
	assert.Equal(t, color.NRGBA{R: 50, G: 100, B: 100, A: 155}, LerpColor(a, b, 0.5))
	assert.Equal(t, b, LerpColor(a, b, 7))
}
