package wingman

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// stateHandler is the behaviour of one State.
type stateHandler interface {
	// enter runs the entry effects when SetState selects the state.
	enter(a *Agent, p Params)
	// update flies one tick. The control input has already been reset.
	update(a *Agent, dt float64)
}

var handlers = [numStates]stateHandler{
	StateIdle:            idleState{},
	StateFollow:          followState{},
	StateAttack:          attackState{},
	StateAttackAll:       attackAllState{},
	StateDefend:          defendState{},
	StateProtect:         protectState{},
	StateReturnToCarrier: returnState{},
	StateBreakAttack:     breakAttackState{},
}

func handlerFor(s State) stateHandler {
	if s < 0 || s >= numStates {
		return nil
	}
	return handlers[s]
}

type noEntry struct{}

func (noEntry) enter(*Agent, Params) {}

// Idle: brake to a stop, then level out.
type idleState struct{ noEntry }

func (idleState) update(a *Agent, _ float64) {
	a.idle()
}

func (a *Agent) idle() {
	forward := a.self.Velocity.Dot(a.heading())
	if speed := a.self.Speed(); speed > IdleStopSpeed {
		a.input.setThrust(-game.Sign(forward) * math.Min(1, speed/SpeedErrorWindow))
	}
	a.levelOut()
}

// Follow: hold the formation slot of the followed ship.
type followState struct{}

func (followState) enter(a *Agent, _ Params) {
	a.setTarget(game.NoEntity)
	a.resetLock()
}

func (followState) update(a *Agent, _ float64) {
	leader := a.resolve(a.params.Target)
	if !leader.Alive() || leader.ID == a.self.ID {
		leader = a.leader()
	}
	if leader == nil {
		a.idle()
		return
	}

	slot := a.formationSlot(leader)
	a.flyToPosition(slot, leader.Direction)

	dist := game.Distance(a.self.Position, slot)
	if dist > FollowAfterburnerDistance {
		a.input.Afterburner = true
	}
	if dist < FollowMatchDistance {
		a.controlSpeed(leader.Velocity.Dot(a.heading()))
	}
}

// Attack: engage the given target, the leader's target, or the best one.
type attackState struct{}

func (attackState) enter(a *Agent, p Params) {
	a.currentTarget = p.Target
	a.resetLock()
	a.rerollOffset()
}

func (attackState) update(a *Agent, dt float64) {
	a.engage(dt, true, false)
}

// AttackAll: engage the best target, re-selecting now and then.
type attackAllState struct{ noEntry }

func (attackAllState) update(a *Agent, dt float64) {
	a.engage(dt, false, false)
}

// BreakAttack: AttackAll with aggressive attack runs.
type breakAttackState struct{ noEntry }

func (breakAttackState) update(a *Agent, dt float64) {
	a.engage(dt, false, true)
}

// Defend: evade the nearest threat, firing when it drifts into the nose.
type defendState struct{ noEntry }

func (defendState) update(a *Agent, _ float64) {
	threat := a.nearestThreat()
	if threat == nil {
		a.scanPattern()
		return
	}
	a.setTarget(threat.ID)
	a.evasiveManeuver(threat)

	toThreat := game.UnitOrZero(threat.Position.Sub(a.self.Position))
	if a.heading().Dot(toThreat) > DefendFireCone {
		a.input.FireWeapon = true
	}
}

// Protect: attack whatever threatens the protectee, otherwise orbit it.
type protectState struct{}

func (protectState) enter(a *Agent, p Params) {
	a.setTarget(game.NoEntity)
	a.resetLock()
	a.protectTarget = p.Target
	a.searchTimer = 0
}

func (protectState) update(a *Agent, dt float64) {
	if a.protectTarget == game.NoEntity {
		a.protectTarget = a.snap.Leader
	}
	protectee := a.resolve(a.protectTarget)
	if !protectee.Alive() || protectee.ID == a.self.ID {
		a.fallbackToFollow(dt)
		return
	}

	if threat := a.nearestThreatTo(protectee); threat != nil {
		a.setTarget(threat.ID)
		a.attackTarget(threat, dt, false)
		return
	}
	if target := a.validateTarget(); target != nil {
		a.attackTarget(target, dt, false)
		return
	}

	a.protectiveOrbit(protectee)

	a.searchTimer += dt
	if a.searchTimer >= ProtectScanInterval {
		a.searchTimer = 0
		if best := a.selectBestTarget(); best != nil {
			a.setTarget(best.ID)
		}
	}
}

// ReturnToCarrier: fly home, slow down on approach and hover.
type returnState struct{}

func (returnState) enter(a *Agent, p Params) {
	a.setTarget(game.NoEntity)
	a.carrier = p.Carrier
}

func (returnState) update(a *Agent, dt float64) {
	carrier := a.resolve(a.carrier)
	if !carrier.Alive() || carrier.ID == a.self.ID {
		a.fallbackToFollow(dt)
		return
	}

	dist := game.Distance(a.self.Position, carrier.Position)
	if dist <= CarrierHoverDistance {
		a.flyToPosition(carrierHoverPoint(carrier), carrier.Direction)
	} else {
		a.flyToPosition(carrier.Position, game.Vec3{})
	}
	if dist <= CarrierApproachDistance {
		a.controlSpeed(math.Min(CarrierMaxApproachSpeed, dist*CarrierMaxApproachSpeed/CarrierApproachDistance))
	}
	if dist > CarrierAfterburnerDistance {
		a.input.Afterburner = true
	}
}
