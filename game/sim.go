package game

import (
	"log/slog"
	"math"
	"math/rand"

	"flightradar/log"
	"flightradar/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// pilotCommands is implemented by player inputs that can request target
// cycling and respawning.
type pilotCommands interface {
	ShouldCycleTarget() bool
	ShouldRespawn() bool
}

// Stats is a snapshot of simulation and radar counters
type Stats struct {
	Elapsed        float64
	Wave           int
	Aircraft       int
	Missiles       int
	Tracked        int
	Threats        int
	ContactMarkers int
	MissileMarkers int
	Launched       int
	Kills          int
	Losses         int
	PlayerAlive    bool
}

// Sim runs the world, its AI, and the radar without any rendering or
// window. Game wraps it for interactive play; cmd/radarsim drives it
// headless.
type Sim struct {
	config Config
	lg     *log.Logger
	rng    *rand.Rand

	world           *World
	collisionSystem *CollisionSystem

	player      *Entity
	playerInput InputProvider
	targeting   *Targeting

	radar    *radar.Radar
	radarOff bool
	layer    *MarkerLayer
	sprite   *ebiten.Image

	// Accumulated unscaled time in seconds
	elapsed float64

	// Wave-based spawning
	waveNumber             int
	enemiesPerWave         int
	enemiesSpawnedThisWave int
	waveSpawnTimer         float64
	waveCooldownTimer      float64

	launched int
	kills    int
	losses   int
}

// SimOption configures a Sim
type SimOption func(*Sim)

// WithContactSprite draws contact markers from img instead of vector
// squares.
func WithContactSprite(img *ebiten.Image) SimOption {
	return func(s *Sim) { s.sprite = img }
}

// WithSeed makes spawning deterministic
func WithSeed(seed int64) SimOption {
	return func(s *Sim) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewSim creates a world with a player flying input, wingmen, and a radar
// reading user settings from store.
func NewSim(config Config, store radar.SettingsStore, input InputProvider, lg *log.Logger, opts ...SimOption) *Sim {
	world := NewWorld(config)
	s := &Sim{
		config:          config,
		lg:              lg,
		rng:             rand.New(rand.NewSource(1)),
		world:           world,
		collisionSystem: NewCollisionSystem(world),
		playerInput:     input,
		targeting:       NewTargeting(GetWeaponConfig(GetShipTypeConfig(ShipTypePlayer).Weapon)),
		layer:           NewMarkerLayer(),
		waveNumber:      1,
		enemiesPerWave:  config.FirstWaveSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	rc := config.RadarConfig()
	if s.sprite != nil {
		rc.ContactTemplate = SpriteTemplate{Layer: s.layer, Image: s.sprite}
	} else {
		rc.ContactTemplate = ShapeTemplate{Layer: s.layer, Shape: MarkerSquare}
	}
	rc.MissileTemplate = ShapeTemplate{Layer: s.layer, Shape: MarkerDiamond, Size: r2.Vec{X: 9, Y: 9}}
	rc.FallbackShape = ShapeTemplate{Layer: s.layer, Shape: MarkerCircle}
	s.radar = radar.New(rc, world, world, store, lg)
	s.radar.SetObserverResolver(func() radar.Observer {
		if p := world.FindPlayer(); p != nil {
			return p
		}
		return nil
	})

	s.spawnPlayer(r3.Vec{Y: 3000}, 0)
	for i := 0; i < config.WingmenCount; i++ {
		s.spawnAI(EnemyTypeEscort, r3.Add(s.player.Pos, r3.Vec{X: float64(i+1) * 300, Z: -float64(i+1) * 300}), 0)
	}
	return s
}

// World returns the simulated world
func (s *Sim) World() *World { return s.world }

// Radar returns the radar engine
func (s *Sim) Radar() *radar.Radar { return s.radar }

// Markers returns the layer holding the radar's marker visuals
func (s *Sim) Markers() *MarkerLayer { return s.layer }

// Player returns the player aircraft, which may be dead
func (s *Sim) Player() *Entity { return s.player }

// Targeting returns the player's targeting state
func (s *Sim) Targeting() *Targeting { return s.targeting }

// SetRadarEnabled switches the radar on or off. A disabled radar holds no
// markers and is not ticked.
func (s *Sim) SetRadarEnabled(on bool) {
	if on == !s.radarOff {
		return
	}
	s.radarOff = !on
	if s.radarOff {
		s.radar.Disable()
	} else {
		s.radar.ForceRescan()
	}
}

// RadarEnabled reports whether the radar is ticked
func (s *Sim) RadarEnabled() bool { return !s.radarOff }

// Elapsed returns accumulated simulation time
func (s *Sim) Elapsed() float64 { return s.elapsed }

// TargetEntity returns the player's current target, if it still exists
func (s *Sim) TargetEntity() *Entity {
	id, ok := s.targeting.Target()
	if !ok {
		return nil
	}
	e, _ := s.world.Get(id)
	return e
}

// Stats returns current counters
func (s *Sim) Stats() Stats {
	st := Stats{
		Elapsed:        s.elapsed,
		Wave:           s.waveNumber,
		Tracked:        len(s.radar.TrackedContacts()),
		Threats:        s.radar.ThreatCount(),
		ContactMarkers: s.radar.ContactMarkers(),
		MissileMarkers: s.radar.MissileMarkers(),
		Launched:       s.launched,
		Kills:          s.kills,
		Losses:         s.losses,
		PlayerAlive:    s.player != nil && !s.player.IsDead(),
	}
	for _, e := range s.world.AllEntities {
		if e.Type == EntityTypeMissile {
			st.Missiles++
		} else {
			st.Aircraft++
		}
	}
	return st
}

// Step advances the simulation by deltaTime seconds and ticks the radar
func (s *Sim) Step(deltaTime float64) {
	deltaTime = math.Min(deltaTime, s.config.MaxDeltaTime)
	if deltaTime <= 0 {
		return
	}
	s.elapsed += deltaTime

	if s.playerInput != nil {
		s.playerInput.Update(deltaTime)
		if cmds, ok := s.playerInput.(pilotCommands); ok {
			if cmds.ShouldRespawn() && (s.player == nil || s.player.IsDead()) {
				s.Respawn()
			}
			if cmds.ShouldCycleTarget() && s.player != nil && !s.player.IsDead() {
				if s.targeting.Cycle(s.player, s.world) {
					id, _ := s.targeting.Target()
					s.lg.Debugf("target %d selected", id)
				}
			}
		}
	}

	// Entities launched this frame are appended; they start moving next
	// frame.
	for _, entity := range s.world.AllEntities[:len(s.world.AllEntities):len(s.world.AllEntities)] {
		if entity.IsDead() {
			continue
		}

		switch {
		case entity.Type == EntityTypeMissile:
			GuideMissile(entity, deltaTime)
		case entity.Input != nil && entity.Input != s.playerInput:
			entity.Input.Update(deltaTime)
			if aiInput, ok := entity.Input.(*AIInput); ok {
				UpdateAI(aiInput, entity, s.player, s.config, deltaTime)
			}
		}

		entity.Update(deltaTime)
		if entity.Type != EntityTypeMissile {
			entity.Pos.Y = math.Max(s.config.MinAltitude, math.Min(entity.Pos.Y, s.config.MaxAltitude))
		}

		if entity.Input != nil && entity.Input.ShouldShoot() {
			s.tryLaunch(entity)
		}
	}

	wasLocked := s.targeting.Locked()
	s.targeting.Update(s.player, s.world, deltaTime)
	if s.targeting.Locked() && !wasLocked {
		id, _ := s.targeting.Target()
		s.lg.Debug("target locked", slog.Uint64("id", uint64(id)))
	}

	for _, d := range s.collisionSystem.CheckCollisions() {
		if d.Victim != nil && d.Victim.IsDead() {
			s.lg.Debug("aircraft destroyed",
				slog.Uint64("id", uint64(d.Victim.ID())),
				slog.String("faction", d.Victim.Faction.String()),
				slog.Uint64("by", uint64(d.Missile.OwnerID())))
			if d.Missile.Owner == s.player {
				s.kills++
			}
		}
	}

	for _, e := range s.world.RemoveDead() {
		// A respawn earlier this frame may already have replaced s.player.
		if e.IsPlayer() {
			s.losses++
			if e == s.player {
				s.targeting.Clear()
			}
			s.lg.Info("player shot down", slog.Uint64("id", uint64(e.ID())), slog.Float64("t", s.elapsed))
		}
	}

	s.updateSpawning(deltaTime)

	if !s.radarOff {
		s.radar.Tick(s.elapsed)
	}
}

// tryLaunch fires shooter's missile when its weapon is ready. The player
// fires at a locked target; AI aircraft at the player.
func (s *Sim) tryLaunch(shooter *Entity) {
	var target *Entity
	if shooter == s.player {
		if !s.targeting.Locked() {
			return
		}
		target = s.TargetEntity()
	} else if s.player != nil && Hostile(shooter.Faction, s.player.Faction) {
		target = s.player
	}
	if target == nil || target.IsDead() {
		return
	}

	weapon := GetWeaponConfig(GetShipTypeConfig(shooter.ShipType).Weapon)
	if !weapon.CanShoot(shooter.TimeSinceLastShot, shooter.Fired) {
		return
	}
	shooter.TimeSinceLastShot = 0
	shooter.Fired = true

	m := NewMissile(shooter, target, weapon)
	s.world.RegisterEntity(m)
	s.launched++
	s.lg.Debug("missile launched",
		slog.Uint64("id", uint64(m.ID())),
		slog.Uint64("owner", uint64(shooter.ID())),
		slog.Uint64("target", uint64(target.ID())))
}

// Respawn replaces a dead player with a fresh aircraft
func (s *Sim) Respawn() {
	pos, yaw := r3.Vec{Y: 3000}, 0.0
	if s.player != nil {
		pos, yaw = s.player.Pos, s.player.Yaw
		pos.Y = math.Max(pos.Y, 1000)
	}
	s.spawnPlayer(pos, yaw)
	s.lg.Info("player respawned", slog.Uint64("id", uint64(s.player.ID())))
}

func (s *Sim) spawnPlayer(pos r3.Vec, yaw float64) {
	s.player = NewAircraft(ShipTypePlayer, FactionPlayer, pos, yaw, s.playerInput)
	s.world.RegisterEntity(s.player)
	s.targeting.Clear()
	s.radar.SetPlayerSource(pilot{sim: s})
}

func (s *Sim) spawnAI(enemyType EnemyType, pos r3.Vec, yaw float64) *Entity {
	cfg := GetEnemyTypeConfig(enemyType)
	ai := NewAIInputWithType(enemyType)
	ai.Anchor = pos
	e := NewAircraft(cfg.ShipType, cfg.Faction, pos, yaw, ai)
	s.world.RegisterEntity(e)
	return e
}

// spawnPoint returns a random position around the player (or the origin)
// and a heading pointing back at it.
func (s *Sim) spawnPoint() (r3.Vec, float64) {
	center := r3.Vec{}
	if s.player != nil && !s.player.IsDead() {
		center = s.player.Pos
	}
	dist := s.config.SpawnMinDist + s.rng.Float64()*(s.config.SpawnMaxDist-s.config.SpawnMinDist)
	angle := s.rng.Float64() * 2 * math.Pi
	pos := r3.Vec{
		X: center.X + math.Sin(angle)*dist,
		Y: 1000 + s.rng.Float64()*7000,
		Z: center.Z + math.Cos(angle)*dist,
	}
	return pos, HeadingTo(pos, center)
}

// updateSpawning releases the current wave one aircraft at a time, then
// waits out the cooldown before the next, larger wave.
func (s *Sim) updateSpawning(deltaTime float64) {
	if s.enemiesSpawnedThisWave < s.enemiesPerWave {
		s.waveSpawnTimer += deltaTime
		if s.waveSpawnTimer >= s.config.WaveSpawnDelay {
			s.waveSpawnTimer = 0
			pos, yaw := s.spawnPoint()
			e := s.spawnAI(GetRandomEnemyType(s.rng), pos, yaw)
			s.enemiesSpawnedThisWave++
			s.lg.Debug("enemy spawned", slog.Uint64("id", uint64(e.ID())), slog.String("type", GetShipTypeConfig(e.ShipType).Name))
		}
		return
	}

	s.waveCooldownTimer += deltaTime
	if s.waveCooldownTimer < s.config.WaveCooldown {
		return
	}
	s.waveCooldownTimer = 0
	s.waveNumber++
	s.enemiesPerWave++
	s.enemiesSpawnedThisWave = 0
	s.waveSpawnTimer = 0

	for i := 0; i < s.config.NeutralsPerWave; i++ {
		pos, _ := s.spawnPoint()
		e := s.spawnAI(EnemyTypeTransport, pos, 0)
		// Transports fly straight across the area to the far side.
		e.Input.(*AIInput).Anchor = r3.Vec{X: -pos.X, Y: pos.Y, Z: -pos.Z}
		e.Yaw = HeadingTo(pos, e.Input.(*AIInput).Anchor)
	}
	s.lg.Info("wave started", slog.Int("wave", s.waveNumber), slog.Int("enemies", s.enemiesPerWave))
}

// Autopilot flies a gentle turn and keeps cycling and firing at targets.
// It drives the player in headless runs.
type Autopilot struct {
	// Turn is the constant stick input
	Turn float64

	// CycleEvery is the interval between target changes
	CycleEvery float64

	sinceCycle float64
	cycle      bool
}

func (a *Autopilot) GetTurn() float64   { return a.Turn }
func (a *Autopilot) GetThrust() float64 { return 0 }
func (a *Autopilot) GetClimb() float64  { return 0 }
func (a *Autopilot) ShouldShoot() bool  { return true }

func (a *Autopilot) Update(deltaTime float64) {
	a.sinceCycle += deltaTime
	a.cycle = a.sinceCycle >= a.CycleEvery
	if a.cycle {
		a.sinceCycle = 0
	}
}

func (a *Autopilot) ShouldCycleTarget() bool { return a.cycle }
func (a *Autopilot) ShouldRespawn() bool     { return true }
