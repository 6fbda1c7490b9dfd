package server

import (
	"go.uber.org/zap"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// ShipView is one ship in a telemetry frame. AI is set for agent-driven
// ships only.
type ShipView struct {
	game.Ship
	Role string          `json:"role"`
	AI   *wingman.Status `json:"ai,omitempty"`
}

// GameFrame is the payload of an update message.
type GameFrame struct {
	Frame int64      `json:"frame"`
	Time  float64    `json:"time"`
	Ships []ShipView `json:"ships"`
}

// Step advances the simulation by dt seconds. Every agent decides from the
// same pre-step world before any ship moves.
func (s *Server) Step(dt float64) {
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	s.simTime += dt
	s.world.Frame++

	s.respawnShips()

	allies := s.world.Hostiles(game.TeamFoe)
	foes := s.world.Hostiles(game.TeamAlly)
	s.updateLeader(foes)
	s.grid.IndexShips(s.world.Ships())

	// AI decisions
	hostileLead := s.hostileLead()
	for _, p := range s.pilots {
		if p.agent == nil {
			continue
		}
		if !p.ship.Alive() {
			p.input.Reset()
			continue
		}
		snap := wingman.Snapshot{
			Self:      p.ship,
			World:     s.world,
			Neighbors: s.grid.GetNearby(p.ship.Position),
		}
		if p.ship.Team == game.TeamAlly {
			snap.Candidates = foes
			snap.Leader = s.leader.ship.ID
		} else {
			snap.Candidates = allies
			snap.Leader = hostileLead
		}
		p.input = p.agent.Update(dt, snap)
	}

	// Physics
	for _, p := range s.pilots {
		if p.agent == nil {
			continue
		}
		p.ship.TargetID = p.agent.CurrentTarget()
		integrateShip(p.ship, p.input, dt)
	}

	s.fireWeapons(dt)
	s.recordDeaths()
}

// fireWeapons resolves every firing agent against its current target.
func (s *Server) fireWeapons(dt float64) {
	for _, p := range s.pilots {
		if p.cooldown > 0 {
			p.cooldown -= dt
		}
		if p.agent == nil || !p.ship.Alive() || !p.input.FireWeapon || p.cooldown > 0 {
			continue
		}

		target, ok := s.world.Lookup(p.agent.CurrentTarget())
		if !ok || !target.Alive() || target.Team == p.ship.Team {
			continue
		}
		if !inWeaponCone(p.ship, target) {
			continue
		}

		target.Health -= WeaponDamage
		if target.Health < 0 {
			target.Health = 0
		}
		p.cooldown = WeaponCooldown
		s.log.Debug("hit",
			zap.String("shooter", p.ship.Name),
			zap.String("target", target.Name),
			zap.Float64("health", target.Health))
	}
}

// inWeaponCone reports whether target is in range and inside the shooter's
// forward cone.
func inWeaponCone(shooter, target *game.Ship) bool {
	to := target.Position.Sub(shooter.Position)
	dist := to.Len()
	if dist > WeaponRange || dist == 0 {
		return false
	}
	return game.UnitOrZero(shooter.Direction).Dot(to.Mul(1/dist)) >= WeaponCone
}

// recordDeaths stamps newly destroyed ships with their time of death.
func (s *Server) recordDeaths() {
	for _, p := range s.pilots {
		if p.dead || p.ship.Alive() {
			continue
		}
		p.dead = true
		p.deadAt = s.simTime
		p.ship.Velocity = game.Vec3{}
		s.log.Info("ship destroyed", zap.String("ship", p.ship.Name), zap.String("role", p.role))
	}
}

// respawnShips restores ships that have been dead for the respawn delay.
// A respawned ship keeps its ID, so handles held by agents become valid
// again.
func (s *Server) respawnShips() {
	delay := s.settings.Scenario.RespawnDelay.Seconds()
	for _, p := range s.pilots {
		if !p.dead || s.simTime-p.deadAt < delay {
			continue
		}
		sh := p.ship
		sh.Position = p.spawn
		sh.Velocity = game.Vec3{}
		sh.Direction = game.WorldForward
		sh.Up = game.WorldUp
		sh.Health = sh.MaxHealth
		sh.TargetID = game.NoEntity
		p.dead = false
		p.cooldown = 0
		p.input.Reset()
		s.log.Info("ship respawned", zap.String("ship", sh.Name), zap.String("role", p.role))
	}
}

// Snapshot copies the world into a telemetry frame.
func (s *Server) Snapshot() GameFrame {
	s.world.Mu.RLock()
	defer s.world.Mu.RUnlock()

	frame := GameFrame{
		Frame: s.world.Frame,
		Time:  s.simTime,
		Ships: make([]ShipView, 0, len(s.pilots)),
	}
	for _, p := range s.pilots {
		frame.Ships = append(frame.Ships, p.view())
	}
	return frame
}

func (p *pilot) view() ShipView {
	v := ShipView{Ship: *p.ship, Role: p.role}
	if p.agent != nil {
		st := p.agent.Status()
		v.AI = &st
	}
	return v
}
