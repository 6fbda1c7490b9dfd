package wingman

import "github.com/lab1702/wingman/game"

// repulsion sums, for every other ship closer than radius, the unit vector
// pointing away from it weighted by (radius - d) / radius.
func repulsion(self *game.Ship, others []*game.Ship, radius float64) game.Vec3 {
	var sum game.Vec3
	if radius <= 0 {
		return sum
	}
	for _, o := range others {
		if o == nil || o == self || o.ID == self.ID {
			continue
		}
		away := self.Position.Sub(o.Position)
		d := away.Len()
		if d >= radius {
			continue
		}
		dir := game.UnitOrZero(away)
		if dir == (game.Vec3{}) {
			// Coincident: push straight up rather than not at all.
			dir = game.WorldUp
		}
		sum = sum.Add(dir.Mul((radius - d) / radius))
	}
	return sum
}

// neighbors are the ships considered for avoidance this tick.
func (a *Agent) neighbors() []*game.Ship {
	if a.snap.Neighbors != nil {
		return a.snap.Neighbors
	}
	return a.snap.Candidates
}

// applyAvoidance bends the aim away from nearby ships and nudges the
// vertical axis with the repulsion's vertical component. It runs after every
// state handler.
func (a *Agent) applyAvoidance() {
	rep := repulsion(a.self, a.neighbors(), a.geom.AvoidanceDistance)
	if rep.Len() <= AvoidanceThreshold {
		return
	}
	a.aimAtDirection(a.heading().Add(rep))
	a.input.setVertical(a.input.Vertical + rep.Y())
}
