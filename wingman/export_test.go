package wingman

import "github.com/lab1702/wingman/game"

// Test helpers to expose private methods for testing purposes
// This file should only be used for testing and not in production

// bind attaches a snapshot the way Update does and returns the undo func.
func (a *Agent) bind(snap Snapshot) func() {
	a.input.Reset()
	a.self = snap.Self
	a.snap = snap
	return func() {
		a.self = nil
		a.snap = Snapshot{}
	}
}

// AimAtDirection exposes the private aimAtDirection method for testing
func (a *Agent) AimAtDirection(self *game.Ship, dir game.Vec3) ControlInput {
	defer a.bind(Snapshot{Self: self})()
	a.aimAtDirection(dir)
	return a.input
}

// FlyToPosition exposes the private flyToPosition method for testing
func (a *Agent) FlyToPosition(self *game.Ship, target, dir game.Vec3) ControlInput {
	defer a.bind(Snapshot{Self: self})()
	a.flyToPosition(target, dir)
	return a.input
}

// ControlSpeed exposes the private controlSpeed method for testing
func (a *Agent) ControlSpeed(self *game.Ship, desired float64) ControlInput {
	defer a.bind(Snapshot{Self: self})()
	a.controlSpeed(desired)
	return a.input
}

// LevelOut exposes the private levelOut method for testing
func (a *Agent) LevelOut(self *game.Ship) ControlInput {
	defer a.bind(Snapshot{Self: self})()
	a.levelOut()
	return a.input
}

// AttackPosition exposes the private attackPosition method for testing
func (a *Agent) AttackPosition(self, target *game.Ship, aggressive bool) game.Vec3 {
	defer a.bind(Snapshot{Self: self})()
	return a.attackPosition(target, aggressive)
}

// SelectBestTarget exposes the private selectBestTarget method for testing
func (a *Agent) SelectBestTarget(snap Snapshot) *game.Ship {
	defer a.bind(snap)()
	return a.selectBestTarget()
}

// NearestThreat exposes the private nearestThreat method for testing
func (a *Agent) NearestThreat(snap Snapshot) *game.Ship {
	defer a.bind(snap)()
	return a.nearestThreat()
}

// NearestThreatTo exposes the private nearestThreatTo method for testing
func (a *Agent) NearestThreatTo(snap Snapshot, p *game.Ship) *game.Ship {
	defer a.bind(snap)()
	return a.nearestThreatTo(p)
}

// Repulsion exposes the private repulsion function for testing
func Repulsion(self *game.Ship, others []*game.Ship, radius float64) game.Vec3 {
	return repulsion(self, others, radius)
}

// OffsetAngle returns the current attack offset angle
func (a *Agent) OffsetAngle() float64 {
	return a.offsetAngle
}
