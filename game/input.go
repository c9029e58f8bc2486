package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"gonum.org/v1/gonum/spatial/r3"
)

// InputProvider defines the interface for entity input/behavior
type InputProvider interface {
	// GetTurn returns the desired yaw rate (-1 to 1, where 1 turns right)
	GetTurn() float64

	// GetThrust returns the desired acceleration (-1 to 1)
	GetThrust() float64

	// GetClimb returns the desired vertical rate (-1 to 1)
	GetClimb() float64

	// ShouldShoot returns true if the entity should fire its weapon
	ShouldShoot() bool

	// Update updates the input provider state
	Update(deltaTime float64)
}

// PlayerInput provides input from the keyboard
type PlayerInput struct {
	keys []ebiten.Key

	turn, thrust, climb float64
	shoot               bool
	cycleTarget         bool
	respawn             bool
}

// NewPlayerInput creates a new player input provider
func NewPlayerInput() *PlayerInput {
	return &PlayerInput{
		keys: make([]ebiten.Key, 0, 10),
	}
}

func (p *PlayerInput) GetTurn() float64   { return p.turn }
func (p *PlayerInput) GetThrust() float64 { return p.thrust }
func (p *PlayerInput) GetClimb() float64  { return p.climb }

// ShouldShoot returns true on the frame space is pressed
func (p *PlayerInput) ShouldShoot() bool { return p.shoot }

// ShouldCycleTarget returns true on the frame tab is pressed
func (p *PlayerInput) ShouldCycleTarget() bool { return p.cycleTarget }

// ShouldRespawn returns true if R key is pressed
func (p *PlayerInput) ShouldRespawn() bool { return p.respawn }

// Update samples the keyboard
func (p *PlayerInput) Update(deltaTime float64) {
	p.keys = inpututil.AppendPressedKeys(p.keys[:0])

	p.turn, p.thrust, p.climb = 0, 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		p.turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		p.turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		p.thrust++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		p.thrust--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		p.climb++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		p.climb--
	}

	p.shoot = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	p.cycleTarget = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	p.respawn = inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// AIInput provides AI-controlled behavior. UpdateAI writes the desired
// controls each frame.
type AIInput struct {
	// Target position to fly towards
	Target r3.Vec

	// Current behavior state
	State AIState

	// Enemy type for behavior differentiation
	EnemyType EnemyType

	// Patrol center for orbiting behaviors
	Anchor r3.Vec

	// Time accumulated in the current pattern
	PatternTime float64

	DesiredTurn   float64
	DesiredThrust float64
	DesiredClimb  float64
	WantShoot     bool
}

// AIState represents the current AI behavior state
type AIState int

const (
	AIStateIdle AIState = iota
	AIStateMoving
	AIStateAttacking
	AIStateReturning
)

func (s AIState) String() string {
	switch s {
	case AIStateIdle:
		return "idle"
	case AIStateMoving:
		return "moving"
	case AIStateAttacking:
		return "attacking"
	case AIStateReturning:
		return "returning"
	}
	return "unknown"
}

// NewAIInputWithType creates a new AI input provider with a specific enemy type
func NewAIInputWithType(enemyType EnemyType) *AIInput {
	return &AIInput{
		State:     AIStateMoving,
		EnemyType: enemyType,
	}
}

func (a *AIInput) GetTurn() float64   { return a.DesiredTurn }
func (a *AIInput) GetThrust() float64 { return a.DesiredThrust }
func (a *AIInput) GetClimb() float64  { return a.DesiredClimb }
func (a *AIInput) ShouldShoot() bool  { return a.WantShoot }

// Update updates the AI state
func (a *AIInput) Update(deltaTime float64) {
	a.PatternTime += deltaTime
}
