package wingman

import (
	"github.com/lab1702/wingman/game"
)

// fireThreshold is the heading-to-target dot product required to fire.
// Less accurate pilots fire with a looser alignment.
func (a *Agent) fireThreshold() float64 {
	return FireAlignBase - (1-a.traits.Accuracy)*FireAlignAccuracySpan
}

// attackTarget flies one tick of an attack run against target.
func (a *Agent) attackTarget(target *game.Ship, dt float64, aggressive bool) {
	toTarget := target.Position.Sub(a.self.Position)
	dist := toTarget.Len()
	dir := game.UnitOrZero(toTarget)

	switch {
	case dist > a.geom.MaxAttackDistance:
		// Out of range: close in directly.
		a.resetLock()
		a.flyToPosition(target.Position, game.Vec3{})
		a.input.Afterburner = true
		a.logWeaponDecision("HOLD", "out of range", dist)

	case dist < a.geom.MinAttackDistance && !aggressive:
		retreat := a.self.Position.Sub(dir.Mul(BackOffDistance))
		a.flyToPosition(retreat, dir)
		a.logWeaponDecision("HOLD", "backing off", dist)

	default:
		a.lockTime += dt
		if a.lockTime >= LockThreshold {
			a.locked = true
		}
		a.offsetTimer += dt
		if a.offsetTimer >= AttackOffsetReroll {
			a.rerollOffset()
		}

		a.flyToPosition(a.attackPosition(target, aggressive), dir)

		if !a.locked {
			a.logWeaponDecision("HOLD", "locking", dist)
			return
		}
		if a.heading().Dot(dir) > a.fireThreshold() {
			a.input.FireWeapon = true
			a.logWeaponDecision("FIRE", "locked and aligned", dist)
		} else {
			a.logWeaponDecision("HOLD", "misaligned", dist)
		}
	}
}

// acquireTarget picks the leader's target when it is a live candidate and
// falls back to scoring.
func (a *Agent) acquireTarget() *game.Ship {
	if t := a.candidate(a.sharedTarget()); t.Alive() && t.ID != a.self.ID {
		return t
	}
	return a.selectBestTarget()
}

// engage runs the target-seeking states. Attack adopts the shared target
// first; AttackAll and BreakAttack score every time and occasionally
// re-select on their own.
func (a *Agent) engage(dt float64, shared, aggressive bool) {
	target := a.validateTarget()
	switch {
	case target == nil && shared:
		target = a.acquireTarget()
	case target == nil:
		target = a.selectBestTarget()
	case !shared && a.roll(RetargetChance):
		if best := a.selectBestTarget(); best != nil {
			target = best
		}
	}
	if target == nil {
		a.fallbackToFollow(dt)
		return
	}
	a.setTarget(target.ID)
	a.attackTarget(target, dt, aggressive)
}
