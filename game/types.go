package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Vec3 is the vector type used for every position, heading and velocity.
type Vec3 = mgl64.Vec3

// EntityID is a handle into an externally owned entity table.
// The zero value (uuid.Nil) means "no entity".
type EntityID = uuid.UUID

// NoEntity is the empty handle.
var NoEntity = uuid.Nil

// NewEntityID returns a fresh random handle.
func NewEntityID() EntityID {
	return uuid.New()
}

// Team IDs
const (
	TeamNone = 0
	TeamAlly = 1 << 0
	TeamFoe  = 1 << 1
)

// World axes. Y is up, -Z is the default forward heading.
var (
	WorldUp      = Vec3{0, 1, 0}
	WorldForward = Vec3{0, 0, -1}
	// FallbackAxis replaces WorldUp when a heading is parallel to it.
	FallbackAxis = Vec3{1, 0, 0}
)

// Ship is a spacecraft as seen by the AI. The AI reads it every tick and
// never mutates it.
type Ship struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
	Team int      `json:"team"`

	Position  Vec3 `json:"position"`
	Direction Vec3 `json:"direction"` // unit heading
	Up        Vec3 `json:"up"`        // local up axis, zero means WorldUp
	Velocity  Vec3 `json:"velocity"`  // zero when the entity has no physics handle

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`

	// TargetID is the entity's own AI target, NoEntity if it has none.
	TargetID EntityID `json:"targetId"`
}

// NewShip creates a live ship facing WorldForward.
func NewShip(name string, team int, pos Vec3) *Ship {
	return &Ship{
		ID:        NewEntityID(),
		Name:      name,
		Team:      team,
		Position:  pos,
		Direction: WorldForward,
		Up:        WorldUp,
		Health:    100,
		MaxHealth: 100,
		TargetID:  NoEntity,
	}
}

// Alive reports whether the ship still has health left.
func (s *Ship) Alive() bool {
	return s != nil && s.Health > 0
}

// LocalUp returns the ship's up axis, defaulting to WorldUp.
func (s *Ship) LocalUp() Vec3 {
	if s.Up.Dot(s.Up) < epsilon {
		return WorldUp
	}
	return s.Up.Normalize()
}

// IsTargeting reports whether the ship's own AI is targeting id.
func (s *Ship) IsTargeting(id EntityID) bool {
	return s != nil && id != NoEntity && s.TargetID == id
}

// Speed returns the magnitude of the ship's velocity.
func (s *Ship) Speed() float64 {
	return s.Velocity.Len()
}
