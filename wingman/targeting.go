package wingman

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// scoringProtectee is the entity whose attackers count as threatening when
// scoring: the protectee while protecting, the leader otherwise.
func (a *Agent) scoringProtectee() *game.Ship {
	if a.state == StateProtect {
		if p := a.resolve(a.protectTarget); p.Alive() {
			return p
		}
	}
	return a.leader()
}

// selectBestTarget scores every live candidate in targeting range and returns
// the highest scorer. Ties keep the first candidate evaluated.
func (a *Agent) selectBestTarget() *game.Ship {
	shared := a.sharedTarget()
	protectee := a.scoringProtectee()

	var best *game.Ship
	bestScore := WorstScore
	for _, c := range a.snap.Candidates {
		if !c.Alive() || c.ID == a.self.ID {
			continue
		}
		dist := game.Distance(a.self.Position, c.Position)
		if dist > a.geom.MaxTargetingRange {
			continue
		}
		score := a.scoreTarget(c, dist, shared, protectee)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// scoreTarget rates a candidate: proximity, being in front, being the
// leader's target and threatening the protectee all add up.
func (a *Agent) scoreTarget(c *game.Ship, dist float64, shared game.EntityID, protectee *game.Ship) float64 {
	rng := a.geom.MaxTargetingRange
	score := (rng - dist) / rng

	toTarget := game.UnitOrZero(c.Position.Sub(a.self.Position))
	score += math.Max(0, a.heading().Dot(toTarget)) * ScoreFrontWeight

	if shared != game.NoEntity && c.ID == shared {
		score += ScoreSharedTargetBonus
	}
	if isThreatening(c, protectee) {
		score += ScoreThreatBonus
	}
	return score
}

// isThreatening reports whether c targets p or is close to it.
func isThreatening(c, p *game.Ship) bool {
	if p == nil {
		return false
	}
	return c.IsTargeting(p.ID) || game.Distance(c.Position, p.Position) <= ThreateningDistance
}

// nearestThreat returns the closest live candidate in range. Candidates
// already targeting this agent count as half as far away.
func (a *Agent) nearestThreat() *game.Ship {
	var nearest *game.Ship
	nearestDist := MaxSearchDistance
	for _, c := range a.snap.Candidates {
		if !c.Alive() || c.ID == a.self.ID {
			continue
		}
		dist := game.Distance(a.self.Position, c.Position)
		if dist > a.geom.MaxTargetingRange {
			continue
		}
		if c.IsTargeting(a.self.ID) {
			dist *= HostileSelfPenalty
		}
		if dist < nearestDist {
			nearestDist = dist
			nearest = c
		}
	}
	return nearest
}

// nearestThreatTo is nearestThreat measured from p, over a wider range and
// with a stronger weight on candidates targeting p.
func (a *Agent) nearestThreatTo(p *game.Ship) *game.Ship {
	if p == nil {
		return nil
	}
	maxRange := a.geom.MaxTargetingRange * ProtecteeRangeFactor

	var nearest *game.Ship
	nearestDist := MaxSearchDistance
	for _, c := range a.snap.Candidates {
		if !c.Alive() || c.ID == a.self.ID || c.ID == p.ID {
			continue
		}
		dist := game.Distance(p.Position, c.Position)
		if dist > maxRange {
			continue
		}
		if c.IsTargeting(p.ID) {
			dist *= HostileProtecteePenalty
		}
		if dist < nearestDist {
			nearestDist = dist
			nearest = c
		}
	}
	return nearest
}
