package wingman_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// newShip returns a live ship at pos facing -Z.
func newShip(name string, team int, pos game.Vec3) *game.Ship {
	return game.NewShip(name, team, pos)
}

// newTestAgent returns a seeded agent bound to self's ID.
func newTestAgent(self *game.Ship, opts ...wingman.Option) *wingman.Agent {
	opts = append([]wingman.Option{wingman.WithID(self.ID), wingman.WithSeed(42)}, opts...)
	return wingman.NewAgent(opts...)
}

// worldOf builds a world containing ships.
func worldOf(ships ...*game.Ship) *game.World {
	w := game.NewWorld()
	for _, s := range ships {
		w.Add(s)
	}
	return w
}

// tick runs n updates with a fixed dt and returns the last input.
func tick(a *wingman.Agent, n int, dt float64, snap wingman.Snapshot) wingman.ControlInput {
	var in wingman.ControlInput
	for i := 0; i < n; i++ {
		in = a.Update(dt, snap)
	}
	return in
}

// requireBounded checks every axis is inside [-1, 1].
func requireBounded(t *testing.T, in wingman.ControlInput) {
	t.Helper()
	for name, v := range map[string]float64{
		"thrust":   in.Thrust,
		"strafe":   in.Strafe,
		"vertical": in.Vertical,
		"pitch":    in.Pitch,
		"yaw":      in.Yaw,
		"roll":     in.Roll,
	} {
		require.False(t, math.IsNaN(v), name)
		require.GreaterOrEqual(t, v, -1.0, name)
		require.LessOrEqual(t, v, 1.0, name)
	}
}
