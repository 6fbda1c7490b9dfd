package wingman

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// waveTime is the agent's clock shifted by its own phase, so wingmen built
// with different seeds never fly in lockstep.
func (a *Agent) waveTime() float64 {
	return a.clock + a.phase
}

// frame returns a ship's forward, right and up axes.
func frame(s *game.Ship) (forward, right, up game.Vec3) {
	forward = game.UnitOrZero(s.Direction)
	if forward == (game.Vec3{}) {
		forward = game.WorldForward
	}
	right, up = game.Basis(forward, s.LocalUp())
	return forward, right, up
}

// formationSlot returns the leader-relative formation position.
func (a *Agent) formationSlot(leader *game.Ship) game.Vec3 {
	forward, right, up := frame(leader)
	off := a.geom.FormationOffset
	return leader.Position.
		Add(right.Mul(off.X())).
		Add(up.Mul(off.Y())).
		Add(forward.Mul(off.Z()))
}

// carrierHoverPoint is the holding position above and behind the carrier.
func carrierHoverPoint(carrier *game.Ship) game.Vec3 {
	forward, _, up := frame(carrier)
	return carrier.Position.Add(up.Mul(CarrierHoverUp)).Sub(forward.Mul(CarrierHoverBack))
}

// attackPosition predicts where the target will be and offsets the attack
// point around the line of approach by the agent's current offset angle.
func (a *Agent) attackPosition(target *game.Ship, aggressive bool) game.Vec3 {
	predicted := target.Position.Add(target.Velocity.Mul(PredictionTime))

	toTarget := game.UnitOrZero(predicted.Sub(a.self.Position))
	if toTarget == (game.Vec3{}) {
		toTarget = a.heading()
	}
	right, up := game.Basis(toTarget, game.WorldUp)

	factor := AggressiveOffset
	span := AggressiveRangeFactor
	if !aggressive {
		factor = BaseOffset + a.traits.Evasiveness*EvasivenessOffset
		span = StandardRangeFactor
	}
	offset := right.Mul(math.Cos(a.offsetAngle)).
		Add(up.Mul(math.Sin(a.offsetAngle))).
		Mul(factor)

	back := game.UnitOrZero(toTarget.Add(offset))
	standoff := game.Lerp(a.geom.MinAttackDistance, a.geom.MaxAttackDistance, span)
	return predicted.Sub(back.Mul(standoff))
}

// evasiveManeuver weaves away along a right/up waveform with the afterburner
// lit, occasionally glancing back at the threat.
func (a *Agent) evasiveManeuver(threat *game.Ship) {
	t := a.waveTime()
	_, right, up := frame(a.self)

	dir := game.UnitOrZero(right.Mul(math.Sin(1.3 * t)).Add(up.Mul(math.Cos(0.9 * t))))
	dist := EvadeBaseDistance + EvadeDistanceSwing*math.Sin(0.5*t)
	a.flyToPosition(a.self.Position.Add(dir.Mul(dist)), game.Vec3{})
	a.input.Afterburner = true

	if math.Sin(2.1*t) > EvadeGlanceLevel {
		a.aimAtDirection(threat.Position.Sub(a.self.Position))
	}
}

// scanPattern drifts around the current position while sweeping the look
// direction.
func (a *Agent) scanPattern() {
	t := a.waveTime()
	drift := game.Vec3{
		50 * math.Sin(0.3*t),
		20 * math.Sin(0.2*t),
		50 * math.Cos(0.3*t),
	}
	look := game.Vec3{
		math.Sin(0.4 * t),
		0.2 * math.Sin(0.25*t),
		-math.Cos(0.4 * t),
	}
	a.flyToPosition(a.self.Position.Add(drift), look)
}

// protectiveOrbit holds station behind and above the protectee, swinging
// side to side, looking where the protectee looks.
func (a *Agent) protectiveOrbit(protectee *game.Ship) {
	t := a.waveTime()
	forward, right, up := frame(protectee)

	point := protectee.Position.
		Sub(forward.Mul(OrbitBehind)).
		Add(up.Mul(OrbitAbove)).
		Add(right.Mul(OrbitSwing * math.Sin(0.5*t)))
	look := forward.
		Add(right.Mul(0.2 * math.Sin(0.7*t))).
		Add(up.Mul(0.1 * math.Cos(0.5*t)))
	a.flyToPosition(point, look)
}
