package server

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// The leader stands in for a human player. It flies a level circle around
// the carrier at constant speed and calls out the nearest hostile as its
// target, which the wingmen pick up as the shared target.

func leaderAngle(t float64) float64 {
	return t * LeaderSpeed / LeaderCircuitRadius
}

func leaderPosition(t float64) game.Vec3 {
	a := leaderAngle(t)
	return game.Vec3{LeaderCircuitRadius * math.Cos(a), 0, LeaderCircuitRadius * math.Sin(a)}
}

// leaderHeading is the tangent of the circuit at time t.
func leaderHeading(t float64) game.Vec3 {
	a := leaderAngle(t)
	return game.Vec3{-math.Sin(a), 0, math.Cos(a)}
}

// updateLeader moves the scripted leader along its circuit and refreshes
// its target. The caller holds the world lock.
func (s *Server) updateLeader(hostiles []*game.Ship) {
	l := s.leader.ship
	if !l.Alive() {
		l.Velocity = game.Vec3{}
		return
	}

	l.Position = leaderPosition(s.simTime)
	l.Direction = leaderHeading(s.simTime)
	l.Up = game.WorldUp
	l.Velocity = l.Direction.Mul(LeaderSpeed)

	l.TargetID = game.NoEntity
	best := LeaderTargetRange
	for _, h := range hostiles {
		if !h.Alive() {
			continue
		}
		if d := game.Distance(l.Position, h.Position); d <= best {
			best = d
			l.TargetID = h.ID
		}
	}
}
