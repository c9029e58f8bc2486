package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	aiTurnDeadZone   = 0.02        // radians
	aiFullTurnAngle  = math.Pi / 4 // heading error that commands full stick
	aiClimbFullError = 300.0       // meters of altitude error for full climb
	droneOrbitRadius = 1500.0
	droneOrbitRate   = 0.15 // rad/s
	waypointReached  = 600.0
)

// UpdateAI updates AI input providers with behavior patterns. player may
// be nil.
func UpdateAI(aiInput *AIInput, entity *Entity, player *Entity, config Config, deltaTime float64) {
	if aiInput == nil {
		return
	}

	aiInput.WantShoot = false
	aiInput.DesiredThrust = 0

	playerAlive := player != nil && !player.IsDead()
	enemyCfg := GetEnemyTypeConfig(aiInput.EnemyType)

	switch {
	case r3.Norm(r3.Vec{X: entity.Pos.X, Z: entity.Pos.Z}) > config.WorldRadius:
		aiInput.State = AIStateReturning
		aiInput.Target = r3.Vec{Y: entity.Pos.Y}
		aiInput.DesiredThrust = 1

	case aiInput.EnemyType == EnemyTypeInterceptor && playerAlive && Hostile(entity.Faction, player.Faction):
		aiInput.State = AIStateAttacking
		aiInput.Target = CalculatePredictiveAim(entity.Pos, player, math.Max(entity.Speed, 1))

		dist := entity.DistanceTo(player)
		if dist > enemyCfg.PreferredRange {
			aiInput.DesiredThrust = 1
		} else {
			aiInput.DesiredThrust = -0.5
		}
		aiInput.WantShoot = canLaunchAt(entity, player)

	case aiInput.EnemyType == EnemyTypeEscort && playerAlive:
		aiInput.State = AIStateMoving
		fwd := player.Forward()
		right := r3.Vec{X: fwd.Z, Z: -fwd.X}
		aiInput.Target = r3.Add(player.Pos, r3.Add(r3.Scale(-enemyCfg.PreferredRange, fwd), r3.Scale(enemyCfg.PreferredRange, right)))
		if entity.DistanceTo(player) > 2*enemyCfg.PreferredRange {
			aiInput.DesiredThrust = 1
		} else {
			aiInput.DesiredThrust = (player.Speed - entity.Speed) / 20
		}

	case aiInput.EnemyType == EnemyTypeTransport:
		aiInput.State = AIStateMoving
		if r3.Norm(r3.Sub(aiInput.Anchor, entity.Pos)) < waypointReached {
			// Fly the reciprocal leg.
			aiInput.Anchor = r3.Vec{X: -aiInput.Anchor.X, Y: aiInput.Anchor.Y, Z: -aiInput.Anchor.Z}
		}
		aiInput.Target = aiInput.Anchor

	default:
		// Drones and idle interceptors orbit their anchor.
		aiInput.State = AIStateIdle
		angle := aiInput.PatternTime * droneOrbitRate
		aiInput.Target = r3.Add(aiInput.Anchor, r3.Vec{
			X: math.Sin(angle) * droneOrbitRadius,
			Z: math.Cos(angle) * droneOrbitRadius,
		})
	}

	steerTo(aiInput, entity, config)
}

// steerTo converts the target point into stick inputs
func steerTo(aiInput *AIInput, entity *Entity, config Config) {
	flat := r3.Vec{X: aiInput.Target.X - entity.Pos.X, Z: aiInput.Target.Z - entity.Pos.Z}
	if r3.Norm(flat) > 1.0 {
		angleDiff := normalizeAngle(HeadingTo(entity.Pos, aiInput.Target) - entity.Yaw)
		if math.Abs(angleDiff) > aiTurnDeadZone {
			aiInput.DesiredTurn = clampUnit(angleDiff / aiFullTurnAngle)
		} else {
			aiInput.DesiredTurn = 0
		}
	} else {
		aiInput.DesiredTurn = 0
	}

	alt := math.Max(config.MinAltitude, math.Min(aiInput.Target.Y, config.MaxAltitude))
	aiInput.DesiredClimb = clampUnit((alt - entity.Pos.Y) / aiClimbFullError)
}

// canLaunchAt reports whether shooter's weapon is ready and target is
// inside its launch envelope.
func canLaunchAt(shooter, target *Entity) bool {
	weapon := GetWeaponConfig(GetShipTypeConfig(shooter.ShipType).Weapon)
	if !weapon.CanShoot(shooter.TimeSinceLastShot, shooter.Fired) {
		return false
	}
	if target == nil || target.IsDead() {
		return false
	}
	delta := r3.Sub(target.Pos, shooter.Pos)
	dist := r3.Norm(delta)
	if dist > weapon.MaxRange || dist == 0 {
		return false
	}
	cos := r3.Dot(shooter.Forward(), r3.Scale(1/dist, delta))
	return cos >= math.Cos(weapon.LaunchHalfCone)
}

// GuideMissile steers a missile towards the predicted intercept point of
// its target and accelerates it. Missiles without a live target fly
// straight.
func GuideMissile(missile *Entity, deltaTime float64) {
	weapon := GetWeaponConfig(GetShipTypeConfig(missile.ShipType).Weapon)
	missile.Speed = math.Min(weapon.MaxSpeed, missile.Speed+weapon.Acceleration*deltaTime)

	dir := missile.Forward()
	if t := missile.Target; t != nil && !t.IsDead() {
		aim := PredictiveAim(missile.Pos, t.Pos, t.Vel, missile.Speed)
		if delta := r3.Sub(aim, missile.Pos); r3.Norm(delta) > 0 {
			dir = SteerTowards(dir, r3.Unit(delta), weapon.TurnRate*deltaTime)
		}
	}

	missile.Vel = r3.Scale(missile.Speed, dir)
	missile.Yaw = math.Atan2(dir.X, dir.Z)
}
