package wingman

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/lab1702/wingman/game"
)

// newRand returns a PCG generator. A zero seed derives one from the agent ID
// so every wingman flies a different pattern without explicit seeding.
func newRand(seed uint64, id game.EntityID) *rand.Rand {
	if seed == 0 {
		seed = binary.LittleEndian.Uint64(id[:8]) ^ binary.LittleEndian.Uint64(id[8:])
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomAngle returns a uniform angle over the full circle.
func (a *Agent) randomAngle() float64 {
	return a.rng.Float64() * 2 * math.Pi
}

// roll reports true with probability p.
func (a *Agent) roll(p float64) bool {
	return a.rng.Float64() < p
}
