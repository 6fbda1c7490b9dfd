package wingman

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// steer maps an error to sign(err) * min(1, |err| * gain).
func steer(err, gain float64) float64 {
	return game.Sign(err) * math.Min(1, math.Abs(err)*gain)
}

// aimAtDirection sets pitch, yaw and roll to turn the heading toward dir
// while rolling the wings level.
func (a *Agent) aimAtDirection(dir game.Vec3) {
	d := game.UnitOrZero(dir)
	if d == (game.Vec3{}) {
		return
	}
	heading := a.heading()
	right, up := game.Basis(heading, a.self.LocalUp())

	yawErr := d.Dot(right)
	pitchErr := d.Dot(up)
	// Directly behind: the projections vanish, so turn the long way round.
	if d.Dot(heading) < 0 && math.Abs(yawErr) < 0.1 && math.Abs(pitchErr) < 0.1 {
		yawErr = 1
	}
	rollErr := right.Dot(game.WorldUp)

	a.input.setSteer(steer(pitchErr, AimGain), steer(yawErr, AimGain), steer(rollErr, RollGain))
}

// flyToPosition steers toward target and sets thrust from the heading
// alignment. desiredDir, when non-zero, replaces the aim direction so the
// craft can face one way while flying to a point.
func (a *Agent) flyToPosition(target, desiredDir game.Vec3) {
	offset := target.Sub(a.self.Position)
	dist := offset.Len()
	toTarget := game.UnitOrZero(offset)
	a.destination = target
	a.hasDestination = true

	aim := game.UnitOrZero(desiredDir)
	if aim == (game.Vec3{}) {
		aim = toTarget
	}
	a.aimAtDirection(aim)

	if toTarget == (game.Vec3{}) {
		a.input.setThrust(0)
		return
	}

	heading := a.heading()
	align := heading.Dot(toTarget)
	switch {
	case align > FlyAlignedDot:
		if dist > FlySlowDistance {
			a.input.setThrust(1)
		} else {
			a.input.setThrust(dist / FlySlowDistance)
		}
	case align < FlyFacingAwayDot:
		a.input.setThrust(FlyReverseThrust)
	default:
		a.input.setThrust(FlyTurningThrust)
	}

	if dist < FlyFineDistance {
		right, up := game.Basis(heading, a.self.LocalUp())
		a.input.setStrafe(offset.Dot(right) / FlyFineNormWindow)
		a.input.setVertical(offset.Dot(up) / FlyFineNormWindow)
	}
}

// controlSpeed drives the forward speed toward desired.
func (a *Agent) controlSpeed(desired float64) {
	a.commandedSpeed = desired
	a.hasSpeed = true

	current := a.self.Velocity.Dot(a.heading())
	err := desired - current
	if math.Abs(err) <= SpeedDeadband {
		a.input.setThrust(0)
		return
	}
	a.input.setThrust(game.Sign(err) * math.Min(1, math.Abs(err)/SpeedErrorWindow))
}

// levelOut rolls the wings level and brings the nose to the horizon.
func (a *Agent) levelOut() {
	heading := a.heading()
	right, _ := game.Basis(heading, a.self.LocalUp())

	rollErr := right.Dot(game.WorldUp)
	pitch := -game.Sign(heading.Y()) * math.Min(LevelPitchCap, math.Abs(heading.Y())*LevelPitchGain)
	a.input.setSteer(pitch, 0, steer(rollErr, RollGain))
}
