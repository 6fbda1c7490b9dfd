// Package wingman implements the tactical AI that flies computer-controlled
// wingmen: a state machine that turns a world snapshot into a normalized
// control input every tick.
package wingman

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lab1702/wingman/game"
)

// Agent is the decision unit of one AI-controlled ship. It is not safe for
// concurrent use; the caller ticks each agent from one goroutine.
type Agent struct {
	id     game.EntityID
	log    *zap.Logger
	traits Traits
	geom   Geometry
	seed   uint64
	rng    *rand.Rand
	phase  float64 // per-agent offset into the maneuver waveforms
	clock  float64 // simulated seconds since creation

	state   State
	params  Params
	handler stateHandler

	currentTarget game.EntityID
	protectTarget game.EntityID
	carrier       game.EntityID
	locked        bool
	lockTime      float64
	searchTimer   float64
	offsetAngle   float64
	offsetTimer   float64

	input          ControlInput
	destination    game.Vec3
	hasDestination bool
	commandedSpeed float64
	hasSpeed       bool

	// valid only during Update
	self *game.Ship
	snap Snapshot
}

// Option configures an Agent.
type Option func(*Agent)

// WithTraits sets the personality traits.
func WithTraits(t Traits) Option {
	return func(a *Agent) { a.traits = t.sanitized() }
}

// WithGeometry sets the engagement distances.
func WithGeometry(g Geometry) Option {
	return func(a *Agent) { a.geom = g.Sanitized() }
}

// WithSeed seeds the agent's random generator. Zero derives a seed from the ID.
func WithSeed(seed uint64) Option {
	return func(a *Agent) { a.seed = seed }
}

// WithLogger sets the logger used for state and targeting events.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.log = l
		}
	}
}

// WithID sets the agent's ID, normally the ID of the ship it flies.
func WithID(id game.EntityID) Option {
	return func(a *Agent) { a.id = id }
}

// NewAgent creates an idle agent.
func NewAgent(opts ...Option) *Agent {
	a := &Agent{
		id:     game.NewEntityID(),
		log:    zap.NewNop(),
		traits: DefaultTraits(),
		geom:   DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(zap.Stringer("agent", a.id))
	a.rng = newRand(a.seed, a.id)
	a.phase = a.rng.Float64() * 100
	a.offsetAngle = a.randomAngle()
	a.state = StateIdle
	a.handler = handlerFor(StateIdle)
	return a
}

// SetState replaces the current state and parameters unconditionally and
// runs the new state's entry effects.
func (a *Agent) SetState(state State, params Params) {
	h := handlerFor(state)
	if h == nil {
		a.log.Warn("ignoring unknown state", zap.Int("state", int(state)))
		return
	}
	if state != a.state {
		a.log.Debug("state change",
			zap.Stringer("from", a.state),
			zap.Stringer("to", state),
			zap.Stringer("target", params.Target))
	}
	a.state = state
	a.params = params
	a.handler = h
	h.enter(a, params)
}

// Update runs one tick: it resets the control input, dispatches to the
// active state and finishes with collision avoidance. The returned value is
// also available through Inputs until the next call.
func (a *Agent) Update(dt float64, snap Snapshot) ControlInput {
	a.input.Reset()
	a.hasDestination = false
	a.hasSpeed = false

	if snap.Self == nil {
		return a.input
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	a.clock += dt
	a.self = snap.Self
	a.snap = snap
	defer func() {
		a.self = nil
		a.snap = Snapshot{}
	}()

	a.handler.update(a, dt)
	a.applyAvoidance()
	return a.input
}

// ID returns the agent's ID.
func (a *Agent) ID() game.EntityID { return a.id }

// State returns the active state.
func (a *Agent) State() State { return a.state }

// Params returns the parameters of the last SetState call.
func (a *Agent) Params() Params { return a.params }

// CurrentTarget returns the current target handle, NoEntity when none.
func (a *Agent) CurrentTarget() game.EntityID { return a.currentTarget }

// ProtectTarget returns the protectee handle.
func (a *Agent) ProtectTarget() game.EntityID { return a.protectTarget }

// Carrier returns the carrier handle.
func (a *Agent) Carrier() game.EntityID { return a.carrier }

// IsTargetLocked reports whether the weapons are ready on the current target.
func (a *Agent) IsTargetLocked() bool { return a.locked }

// TargetLockTime returns the seconds of unbroken engagement with the current target.
func (a *Agent) TargetLockTime() float64 { return a.lockTime }

// Traits returns the personality traits.
func (a *Agent) Traits() Traits { return a.traits }

// Geometry returns the engagement distances.
func (a *Agent) Geometry() Geometry { return a.geom }

// Inputs returns the control input of the last tick.
func (a *Agent) Inputs() ControlInput { return a.input }

// GetInputs returns the last tick's input as keyboard keys.
func (a *Agent) GetInputs() Keys { return a.input.Keys() }

// ShouldFire reports whether the last tick fired the weapon.
func (a *Agent) ShouldFire() bool { return a.input.FireWeapon }

// Status returns a telemetry view of the agent.
func (a *Agent) Status() Status {
	return Status{
		ID:             a.id,
		State:          a.state,
		Target:         a.currentTarget,
		ProtectTarget:  a.protectTarget,
		Carrier:        a.carrier,
		Locked:         a.locked,
		LockTime:       a.lockTime,
		Destination:    a.destination,
		HasDestination: a.hasDestination,
		CommandedSpeed: a.commandedSpeed,
		HasSpeed:       a.hasSpeed,
		Inputs:         a.input,
	}
}

// resolve finds a live or dead entity by handle, candidates first.
func (a *Agent) resolve(id game.EntityID) *game.Ship {
	if id == game.NoEntity {
		return nil
	}
	if s := a.candidate(id); s != nil {
		return s
	}
	if s, ok := a.snap.World.Lookup(id); ok {
		return s
	}
	return nil
}

// candidate finds id in this tick's candidate list.
func (a *Agent) candidate(id game.EntityID) *game.Ship {
	if id == game.NoEntity {
		return nil
	}
	for _, c := range a.snap.Candidates {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

// leader resolves the default leader, nil if it is gone or is this agent.
func (a *Agent) leader() *game.Ship {
	l := a.resolve(a.snap.Leader)
	if !l.Alive() || l.ID == a.self.ID {
		return nil
	}
	return l
}

// sharedTarget is the leader's own target, NoEntity without a leader.
func (a *Agent) sharedTarget() game.EntityID {
	if l := a.leader(); l != nil {
		return l.TargetID
	}
	return game.NoEntity
}

func (a *Agent) heading() game.Vec3 {
	h := game.UnitOrZero(a.self.Direction)
	if h == (game.Vec3{}) {
		return game.WorldForward
	}
	return h
}

func (a *Agent) resetLock() {
	a.locked = false
	a.lockTime = 0
}

// setTarget switches the current target. A different target resets the lock
// and draws a new attack offset.
func (a *Agent) setTarget(id game.EntityID) {
	if id == a.currentTarget {
		return
	}
	if id == game.NoEntity {
		a.log.Debug("target cleared", zap.Stringer("was", a.currentTarget))
	} else {
		a.log.Debug("target acquired", zap.Stringer("target", id), zap.Stringer("state", a.state))
	}
	a.currentTarget = id
	a.resetLock()
	a.rerollOffset()
}

func (a *Agent) rerollOffset() {
	a.offsetAngle = a.randomAngle()
	a.offsetTimer = 0
}

// validateTarget returns the current target if it is still a live candidate
// and clears it otherwise.
func (a *Agent) validateTarget() *game.Ship {
	if a.currentTarget == game.NoEntity {
		return nil
	}
	t := a.candidate(a.currentTarget)
	if !t.Alive() {
		a.setTarget(game.NoEntity)
		return nil
	}
	return t
}

// fallbackToFollow transitions to Follow on the default leader and flies
// the new state for the rest of the tick.
func (a *Agent) fallbackToFollow(dt float64) {
	a.SetState(StateFollow, Params{})
	a.handler.update(a, dt)
}
