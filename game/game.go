package game

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"flightradar/log"
	"flightradar/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SettingsStore is the persisted store the game edits at runtime and the
// radar polls.
type SettingsStore interface {
	radar.SettingsStore
	Toggle(key string, def bool) bool
	Step(key string, def, delta, lo, hi float64) float64
	Save() error
}

// Game represents the main game state
type Game struct {
	config Config
	lg     *log.Logger

	sim         *Sim
	playerInput *PlayerInput
	store       SettingsStore

	camera    *Camera
	renderer  *Renderer
	radarView *RadarView
	profiler  *Profiler

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a new game instance
func NewGame(config Config, store SettingsStore, lg *log.Logger) *Game {
	playerInput := NewPlayerInput()
	sim := NewSim(config, store, playerInput, lg,
		WithContactSprite(NewMarkerSprite(16)),
		WithSeed(time.Now().UnixNano()))

	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight), config.PixelsPerMeter)
	camera.Follow(sim.Player().Pos, 1)

	return &Game{
		config:         config,
		lg:             lg,
		sim:            sim,
		playerInput:    playerInput,
		store:          store,
		camera:         camera,
		renderer:       NewRenderer(camera),
		radarView:      NewRadarView(config, sim.Radar(), sim.Markers()),
		fps:            60.0,
		lastUpdateTime: time.Now(),
	}
}

// SetProfiler enables CPU profiling on frame rate drops
func (g *Game) SetProfiler(p *Profiler) { g.profiler = p }

// Update updates the game state
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer >= 0.5 {
		g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
		g.fpsUpdateCounter = 0
		g.fpsUpdateTimer = 0.0
		// Startup frames are slow.
		if g.sim.Elapsed() > 5 {
			g.profiler.ObserveFPS(g.fps)
		}
	}

	g.handleKeys()

	g.sim.Step(deltaTime)

	if p := g.sim.Player(); p != nil && !p.IsDead() {
		g.camera.Follow(p.Pos, 0.1)
	}
	return nil
}

// handleKeys applies settings and debug keys
func (g *Game) handleKeys() {
	changed := false

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		v := g.store.Step(radar.KeyRange, radar.DefaultRange, g.config.RadarRangeStep, g.config.RadarMinRange, g.config.RadarMaxRange)
		g.lg.Debug("radar range changed", slog.Float64("range", v))
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		v := g.store.Step(radar.KeyRange, radar.DefaultRange, -g.config.RadarRangeStep, g.config.RadarMinRange, g.config.RadarMaxRange)
		g.lg.Debug("radar range changed", slog.Float64("range", v))
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.store.Toggle(radar.KeyShowContacts, true)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.store.Toggle(radar.KeyShowMissiles, true)
		changed = true
	}
	if changed {
		if err := g.store.Save(); err != nil {
			g.lg.Warnf("saving settings: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d := GetDebugState()
		d.ShowLabels = !d.ShowLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		d := GetDebugState()
		d.ShowStats = !d.ShowStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.sim.SetRadarEnabled(!g.sim.RadarEnabled())
		g.lg.Info("radar toggled", slog.Bool("enabled", g.sim.RadarEnabled()))
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.config.BackgroundColor)

	debug := GetDebugState()
	g.renderer.Render(screen, g.sim.World(), g.sim.TargetEntity(), debug.ShowLabels)

	player := g.sim.Player()
	if g.sim.RadarEnabled() {
		g.radarView.Draw(screen, player, g.sim.Elapsed())
	}

	st := g.sim.Stats()
	hud := fmt.Sprintf("FPS %.0f  Wave %d  Kills %d", g.fps, st.Wave, st.Kills)
	if player != nil && !player.IsDead() {
		hud += fmt.Sprintf("\nALT %.0fm  SPD %.0fm/s  HDG %03.0f", player.Pos.Y, player.Speed, headingDegrees(player.Yaw))
		if _, ok := g.sim.Targeting().Target(); ok {
			if g.sim.Targeting().Locked() {
				hud += "\nLOCKED - SPACE to fire"
			} else {
				hud += "\nLOCKING..."
			}
		}
	} else {
		hud += "\nShot down - R to respawn"
	}
	if debug.ShowStats {
		hud += fmt.Sprintf("\nentities %d/%d tracked %d markers %d/%d",
			st.Aircraft, st.Missiles, st.Tracked, st.ContactMarkers, st.MissileMarkers)
	}
	ebitenutil.DebugPrint(screen, hud)
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

func headingDegrees(yaw float64) float64 {
	deg := yaw * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
