package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lab1702/wingman/config"
	"github.com/lab1702/wingman/game"
)

// Test helpers to reach into server state
// This file should only be used for testing and not in production

func testSettings(wingmen, hostiles int) *config.Settings {
	return &config.Settings{
		Addr:     ":0",
		TickRate: 20,
		LogLevel: "debug",
		Scenario: config.ScenarioSettings{
			Wingmen:      wingmen,
			Hostiles:     hostiles,
			Seed:         1,
			RespawnDelay: time.Second,
			ArenaRadius:  1500,
			WingmanState: "follow",
		},
	}
}

func newTestServer(t *testing.T, wingmen, hostiles int) *Server {
	t.Helper()
	s, err := NewServer(testSettings(wingmen, hostiles), nil, nil)
	require.NoError(t, err)
	return s
}

// pilotsWithRole returns the pilots of one role in creation order.
func (s *Server) pilotsWithRole(role string) []*pilot {
	var out []*pilot
	for _, p := range s.pilots {
		if p.role == role {
			out = append(out, p)
		}
	}
	return out
}

// addScriptedFoe places an AI-less hostile ship at pos.
func (s *Server) addScriptedFoe(pos game.Vec3) *pilot {
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	return s.addPilot(game.NewShip("foe", game.TeamFoe, pos), nil, RoleHostile)
}
