package wingman

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lab1702/wingman/game"
)

// State is the agent's high-level behaviour.
type State int

const (
	StateIdle State = iota
	StateFollow
	StateAttack
	StateAttackAll
	StateDefend
	StateProtect
	StateReturnToCarrier
	StateBreakAttack

	numStates
)

var stateNames = [numStates]string{
	StateIdle:            "idle",
	StateFollow:          "follow",
	StateAttack:          "attack",
	StateAttackAll:       "attackAll",
	StateDefend:          "defend",
	StateProtect:         "protect",
	StateReturnToCarrier: "returnToCarrier",
	StateBreakAttack:     "breakAttack",
}

func (s State) String() string {
	if s < 0 || s >= numStates {
		return "unknown"
	}
	return stateNames[s]
}

// AllStates lists every state in declaration order.
func AllStates() []State {
	out := make([]State, numStates)
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// ErrUnknownState is returned by ParseState for unrecognised names.
var ErrUnknownState = errors.New("unknown wingman state")

// ParseState resolves a state name case-insensitively.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return State(i), nil
		}
	}
	return StateIdle, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	st, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Params carries state-scoped configuration for SetState.
type Params struct {
	Target  game.EntityID `json:"target"`
	Carrier game.EntityID `json:"carrier"`
}

// Traits tune the agent's personality. Values are clamped to [0,1].
type Traits struct {
	Aggressiveness float64 `json:"aggressiveness" yaml:"aggressiveness"`
	Accuracy       float64 `json:"accuracy" yaml:"accuracy"`
	Evasiveness    float64 `json:"evasiveness" yaml:"evasiveness"`
}

// DefaultTraits returns the stock personality.
func DefaultTraits() Traits {
	return Traits{Aggressiveness: 0.7, Accuracy: 0.8, Evasiveness: 0.5}
}

func (t Traits) sanitized() Traits {
	def := DefaultTraits()
	return Traits{
		Aggressiveness: unitOr(t.Aggressiveness, def.Aggressiveness),
		Accuracy:       unitOr(t.Accuracy, def.Accuracy),
		Evasiveness:    unitOr(t.Evasiveness, def.Evasiveness),
	}
}

// unitOr clamps v to [0,1], using def when v is NaN.
func unitOr(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return game.Clamp(v, 0, 1)
}

// Geometry holds the engagement distances.
// FormationOffset is expressed in the leader's frame: X right, Y up, Z forward.
type Geometry struct {
	FormationOffset   game.Vec3 `json:"formationOffset"`
	MaxTargetingRange float64   `json:"maxTargetingRange"`
	MinAttackDistance float64   `json:"minAttackDistance"`
	MaxAttackDistance float64   `json:"maxAttackDistance"`
	AvoidanceDistance float64   `json:"avoidanceDistance"`
}

// DefaultGeometry returns the stock engagement distances.
func DefaultGeometry() Geometry {
	return Geometry{
		FormationOffset:   game.Vec3{30, 5, -40},
		MaxTargetingRange: 1000,
		MinAttackDistance: 100,
		MaxAttackDistance: 300,
		AvoidanceDistance: 50,
	}
}

// Sanitized fixes non-positive ranges and swaps inverted attack distances.
func (g Geometry) Sanitized() Geometry {
	def := DefaultGeometry()
	if !(g.MaxTargetingRange > 0) {
		g.MaxTargetingRange = def.MaxTargetingRange
	}
	if !(g.MinAttackDistance > 0) {
		g.MinAttackDistance = def.MinAttackDistance
	}
	if !(g.MaxAttackDistance > 0) {
		g.MaxAttackDistance = def.MaxAttackDistance
	}
	if g.MinAttackDistance > g.MaxAttackDistance {
		g.MinAttackDistance, g.MaxAttackDistance = g.MaxAttackDistance, g.MinAttackDistance
	}
	if !(g.AvoidanceDistance > 0) {
		g.AvoidanceDistance = def.AvoidanceDistance
	}
	return g
}

// ControlInput is the normalized command produced every tick. The AI is its
// only writer; the physics bridge reads it.
type ControlInput struct {
	Thrust   float64 `json:"thrust"`
	Strafe   float64 `json:"strafe"`
	Vertical float64 `json:"vertical"`
	Pitch    float64 `json:"pitch"`
	Yaw      float64 `json:"yaw"`
	Roll     float64 `json:"roll"`

	FireWeapon  bool `json:"fireWeapon"`
	Afterburner bool `json:"afterburnerActive"`
}

// Reset returns every axis to neutral.
func (c *ControlInput) Reset() {
	*c = ControlInput{}
}

func axis(v float64) float64 {
	return game.Clamp(v, -1, 1)
}

// setSteer sets pitch, yaw and roll together.
func (c *ControlInput) setSteer(pitch, yaw, roll float64) {
	c.Pitch = axis(pitch)
	c.Yaw = axis(yaw)
	c.Roll = axis(roll)
}

func (c *ControlInput) setThrust(v float64)   { c.Thrust = axis(v) }
func (c *ControlInput) setStrafe(v float64)   { c.Strafe = axis(v) }
func (c *ControlInput) setVertical(v float64) { c.Vertical = axis(v) }

// Keys is the keyboard-style projection of a ControlInput: each axis sign
// becomes a pair of pressed/released keys.
type Keys struct {
	Forward     bool `json:"forward"`
	Backward    bool `json:"backward"`
	StrafeLeft  bool `json:"strafeLeft"`
	StrafeRight bool `json:"strafeRight"`
	Up          bool `json:"up"`
	Down        bool `json:"down"`
	PitchUp     bool `json:"pitchUp"`
	PitchDown   bool `json:"pitchDown"`
	YawLeft     bool `json:"yawLeft"`
	YawRight    bool `json:"yawRight"`
	RollLeft    bool `json:"rollLeft"`
	RollRight   bool `json:"rollRight"`
	Fire        bool `json:"fire"`
	Afterburner bool `json:"afterburner"`
}

// Keys derives the keyboard projection.
func (c ControlInput) Keys() Keys {
	return Keys{
		Forward:     c.Thrust > 0,
		Backward:    c.Thrust < 0,
		StrafeLeft:  c.Strafe < 0,
		StrafeRight: c.Strafe > 0,
		Up:          c.Vertical > 0,
		Down:        c.Vertical < 0,
		PitchUp:     c.Pitch > 0,
		PitchDown:   c.Pitch < 0,
		YawLeft:     c.Yaw < 0,
		YawRight:    c.Yaw > 0,
		RollLeft:    c.Roll < 0,
		RollRight:   c.Roll > 0,
		Fire:        c.FireWeapon,
		Afterburner: c.Afterburner,
	}
}

// KeyMap returns the keys under the legacy key names used by keyboard input
// consumers.
func (k Keys) KeyMap() map[string]bool {
	return map[string]bool{
		"w":          k.Forward,
		"s":          k.Backward,
		"a":          k.StrafeLeft,
		"d":          k.StrafeRight,
		"r":          k.Up,
		"f":          k.Down,
		"arrowup":    k.PitchDown,
		"arrowdown":  k.PitchUp,
		"arrowleft":  k.YawLeft,
		"arrowright": k.YawRight,
		"q":          k.RollLeft,
		"e":          k.RollRight,
		" ":          k.Fire,
		"shift":      k.Afterburner,
	}
}

// Snapshot is the per-tick view of the world handed to Update. Every slice
// and ship in it is treated as immutable for the duration of the call.
type Snapshot struct {
	Self       *game.Ship
	Candidates []*game.Ship
	// Neighbors are considered for collision avoidance. Candidates are used
	// when nil.
	Neighbors []*game.Ship
	// World resolves handles such as the follow target, protectee and carrier.
	World *game.World
	// Leader is the default follow/protect target. Its TargetID is the
	// shared-interest target.
	Leader  game.EntityID
	Command Command
}

// Command is an explicit intent issued by the caller.
type Command struct {
	State  State
	Params Params
	// Set marks the command as present. A zero Command is a no-op.
	Set bool
}

// NewCommand builds a present command.
func NewCommand(state State, params Params) Command {
	return Command{State: state, Params: params, Set: true}
}

// Apply transitions the agent when the command is present.
func (c Command) Apply(a *Agent) {
	if !c.Set || a == nil {
		return
	}
	a.SetState(c.State, c.Params)
}

// Status is a read-only telemetry view of the agent.
type Status struct {
	ID             game.EntityID `json:"id"`
	State          State         `json:"state"`
	Target         game.EntityID `json:"target"`
	ProtectTarget  game.EntityID `json:"protectTarget"`
	Carrier        game.EntityID `json:"carrier"`
	Locked         bool          `json:"locked"`
	LockTime       float64       `json:"lockTime"`
	Destination    game.Vec3     `json:"destination"`
	HasDestination bool          `json:"hasDestination"`
	CommandedSpeed float64       `json:"commandedSpeed"`
	HasSpeed       bool          `json:"hasSpeed"`
	Inputs         ControlInput  `json:"inputs"`
}
