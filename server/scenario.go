package server

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lab1702/wingman/config"
	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// Pilot roles reported in telemetry
const (
	RoleLeader  = "leader"
	RoleCarrier = "carrier"
	RoleWingman = "wingman"
	RoleHostile = "hostile"
)

// pilot binds a ship to whatever flies it. Scripted ships have no agent.
type pilot struct {
	ship  *game.Ship
	agent *wingman.Agent
	role  string
	spawn game.Vec3

	input    wingman.ControlInput
	cooldown float64 // seconds until the weapon can fire again
	dead     bool
	deadAt   float64
}

// populate builds the reference scenario: a carrier at the origin, a
// scripted leader on its circuit, the wingmen around the leader and the
// hostiles spread over a ring near the arena edge.
func (s *Server) populate(profiles *config.ProfileSet) error {
	sc := s.settings.Scenario

	wingProfile, err := profiles.Get(profiles.Wingman)
	if err != nil {
		return fmt.Errorf("wingman profile: %w", err)
	}
	hostileProfile, err := profiles.Get(profiles.Hostile)
	if err != nil {
		return fmt.Errorf("hostile profile: %w", err)
	}
	startState, err := wingman.ParseState(sc.WingmanState)
	if err != nil {
		return fmt.Errorf("scenario.wingmanState: %w", err)
	}

	carrier := game.NewShip("carrier", game.TeamAlly, game.Vec3{})
	carrier.Health = CarrierHealth
	carrier.MaxHealth = CarrierHealth
	s.carrier = s.addPilot(carrier, nil, RoleCarrier)

	leaderShip := game.NewShip("leader", game.TeamAlly, leaderPosition(0))
	leaderShip.Direction = leaderHeading(0)
	s.leader = s.addPilot(leaderShip, nil, RoleLeader)

	for i := 0; i < sc.Wingmen; i++ {
		// Stagger behind and to the right of the leader's start
		offset := game.Vec3{FormationSpacing * float64(i+1), 0, FormationSpacing * float64(i+1)}
		ship := game.NewShip(fmt.Sprintf("wingman-%d", i+1), game.TeamAlly, leaderShip.Position.Add(offset))
		ship.Direction = leaderShip.Direction
		agent := s.newAgent(ship, wingProfile, uint64(i), "wingman")
		agent.SetState(startState, wingman.Params{})
		s.addPilot(ship, agent, RoleWingman)
	}

	ring := sc.ArenaRadius * 0.8
	for i := 0; i < sc.Hostiles; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		pos := game.Vec3{ring * math.Cos(angle), (s.rng.Float64() - 0.5) * 200, ring * math.Sin(angle)}
		ship := game.NewShip(fmt.Sprintf("hostile-%d", i+1), game.TeamFoe, pos)
		// Face the arena centre
		ship.Direction = game.UnitOrZero(pos.Mul(-1))
		agent := s.newAgent(ship, hostileProfile, uint64(sc.Wingmen+i), "hostile")
		agent.SetState(wingman.StateAttackAll, wingman.Params{})
		s.addPilot(ship, agent, RoleHostile)
	}

	s.log.Info("scenario ready",
		zap.Int("wingmen", sc.Wingmen),
		zap.Int("hostiles", sc.Hostiles),
		zap.String("wingmanProfile", wingProfile.Name),
		zap.String("hostileProfile", hostileProfile.Name),
		zap.Stringer("wingmanState", startState))
	return nil
}

// newAgent creates the AI for a ship. Profiles without a seed get one
// derived from the scenario seed so runs with equal settings match.
func (s *Server) newAgent(ship *game.Ship, prof *config.Profile, n uint64, name string) *wingman.Agent {
	opts := append(prof.Options(),
		wingman.WithID(ship.ID),
		wingman.WithLogger(s.log.Named(name)))
	if prof.Seed == 0 {
		opts = append(opts, wingman.WithSeed(s.settings.Scenario.Seed*1000+n+1))
	}
	return wingman.NewAgent(opts...)
}

func (s *Server) addPilot(ship *game.Ship, agent *wingman.Agent, role string) *pilot {
	p := &pilot{ship: ship, agent: agent, role: role, spawn: ship.Position}
	s.world.Add(ship)
	s.pilots = append(s.pilots, p)
	s.byID[ship.ID] = p
	return p
}

// wingmen returns the wingman pilots in creation order.
func (s *Server) wingmen() []*pilot {
	var out []*pilot
	for _, p := range s.pilots {
		if p.role == RoleWingman {
			out = append(out, p)
		}
	}
	return out
}

// hostileLead is the first hostile, which the rest of the hostiles treat
// as their leader.
func (s *Server) hostileLead() game.EntityID {
	for _, p := range s.pilots {
		if p.role == RoleHostile {
			return p.ship.ID
		}
	}
	return game.NoEntity
}
