package server

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// shipFrame returns a ship's forward, right and up axes.
func shipFrame(s *game.Ship) (forward, right, up game.Vec3) {
	forward = game.UnitOrZero(s.Direction)
	if forward == (game.Vec3{}) {
		forward = game.WorldForward
	}
	right, up = game.Basis(forward, s.LocalUp())
	return forward, right, up
}

// integrateShip advances one ship by dt under the given control input.
// Positive yaw turns right, positive pitch raises the nose and positive
// roll lowers the right wing.
func integrateShip(s *game.Ship, in wingman.ControlInput, dt float64) {
	if !s.Alive() || dt <= 0 {
		return
	}

	// Rotation about the ship's own axes
	forward, right, up := shipFrame(s)
	q := mgl64.QuatRotate(-in.Yaw*YawRate*dt, up).
		Mul(mgl64.QuatRotate(in.Pitch*PitchRate*dt, right)).
		Mul(mgl64.QuatRotate(in.Roll*RollRate*dt, forward))
	forward = game.UnitOrZero(q.Rotate(forward))
	up = q.Rotate(up)
	right, up = game.Basis(forward, up)
	s.Direction = forward
	s.Up = up

	// Thrust
	boost := 1.0
	if in.Afterburner {
		boost = AfterburnerFactor
	}
	accel := forward.Mul(in.Thrust * MaxThrust * boost).
		Add(right.Mul(in.Strafe * StrafeThrust)).
		Add(up.Mul(in.Vertical * StrafeThrust))
	s.Velocity = s.Velocity.Add(accel.Mul(dt))

	// Drag and speed cap
	s.Velocity = s.Velocity.Mul(math.Max(0, 1-LinearDrag*dt))
	if limit := MaxSpeed * boost; s.Velocity.Len() > limit {
		s.Velocity = game.UnitOrZero(s.Velocity).Mul(limit)
	}

	s.Position = s.Position.Add(s.Velocity.Mul(dt))
}
