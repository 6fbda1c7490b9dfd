package wingman_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

func TestRepulsionGrowsAsNeighborCloses(t *testing.T) {
	self := newShip("self", game.TeamAlly, game.Vec3{})
	other := newShip("other", game.TeamAlly, game.Vec3{})
	const radius = 50.0

	prev := -1.0
	for d := radius; d >= 0; d -= 0.5 {
		other.Position = game.Vec3{d, 0, 0}
		mag := wingman.Repulsion(self, []*game.Ship{other}, radius).Len()
		require.Greater(t, mag, prev-1e-12, "d=%v", d)
		if d < radius {
			require.Greater(t, mag, prev, "strictly increasing inside the radius (d=%v)", d)
		}
		prev = mag
	}
}

func TestRepulsionDirectionAndSum(t *testing.T) {
	self := newShip("self", game.TeamAlly, game.Vec3{})
	right := newShip("right", game.TeamAlly, game.Vec3{25, 0, 0})
	below := newShip("below", game.TeamAlly, game.Vec3{0, -10, 0})
	outside := newShip("outside", game.TeamAlly, game.Vec3{0, 0, -80})

	rep := wingman.Repulsion(self, []*game.Ship{right, below, outside, self, nil}, 50)
	assert.InDelta(t, -0.5, rep.X(), 1e-9, "pushed left away from the ship on the right")
	assert.InDelta(t, 0.8, rep.Y(), 1e-9, "pushed up away from the ship below")
	assert.InDelta(t, 0.0, rep.Z(), 1e-9)
}

func TestAvoidanceRunsAfterStateLogic(t *testing.T) {
	self := newShip("self", game.TeamAlly, game.Vec3{})
	below := newShip("below", game.TeamFoe, game.Vec3{0, -10, 0})
	a := newTestAgent(self)

	in := a.Update(0.05, wingman.Snapshot{Self: self, Candidates: []*game.Ship{below}})
	assert.InDelta(t, 0.8, in.Vertical, 1e-9, "vertical nudged by the repulsion")
	assert.Greater(t, in.Pitch, 0.0, "aim bent upward, away from the neighbor")
	requireBounded(t, in)
}

func TestAvoidanceUsesExplicitNeighbors(t *testing.T) {
	self := newShip("self", game.TeamAlly, game.Vec3{})
	near := newShip("near", game.TeamFoe, game.Vec3{0, -10, 0})
	a := newTestAgent(self)

	in := a.Update(0.05, wingman.Snapshot{
		Self:       self,
		Candidates: []*game.Ship{near},
		Neighbors:  []*game.Ship{},
	})
	assert.Zero(t, in.Vertical, "an empty neighbor list disables the candidate fallback")
	assert.Zero(t, in.Pitch)
}

func TestAvoidanceIgnoresTinyRepulsion(t *testing.T) {
	self := newShip("self", game.TeamAlly, game.Vec3{})
	edge := newShip("edge", game.TeamAlly, game.Vec3{0, -49.9, 0})
	a := newTestAgent(self)

	in := a.Update(0.05, wingman.Snapshot{Self: self, Neighbors: []*game.Ship{edge}})
	assert.Zero(t, in.Vertical)
}
