package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldAddLookupRemove(t *testing.T) {
	w := NewWorld()
	a := NewShip("alpha", TeamAlly, Vec3{0, 0, 0})
	b := NewShip("bravo", TeamFoe, Vec3{10, 0, 0})
	c := NewShip("charlie", TeamFoe, Vec3{20, 0, 0})
	w.Add(a)
	w.Add(b)
	w.Add(c)
	require.Equal(t, 3, w.Len())

	got, ok := w.Lookup(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = w.Lookup(NoEntity)
	assert.False(t, ok, "the empty handle never resolves")

	require.True(t, w.Remove(b.ID))
	assert.False(t, w.Remove(b.ID))
	_, ok = w.Lookup(b.ID)
	assert.False(t, ok)

	// Order of the remaining ships is preserved and the index stays valid.
	assert.Equal(t, []*Ship{a, c}, w.Ships())
	got, ok = w.Lookup(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestWorldAddReplaces(t *testing.T) {
	w := NewWorld()
	a := NewShip("alpha", TeamAlly, Vec3{})
	w.Add(a)

	replacement := *a
	replacement.Health = 5
	w.Add(&replacement)

	assert.Equal(t, 1, w.Len())
	got, _ := w.Lookup(a.ID)
	assert.Equal(t, 5.0, got.Health)
}

func TestWorldTeamAndHostiles(t *testing.T) {
	w := NewWorld()
	ally := NewShip("ally", TeamAlly, Vec3{})
	deadAlly := NewShip("dead", TeamAlly, Vec3{})
	deadAlly.Health = 0
	foe := NewShip("foe", TeamFoe, Vec3{})
	w.Add(ally)
	w.Add(deadAlly)
	w.Add(foe)

	assert.Equal(t, []*Ship{ally}, w.Team(TeamAlly))
	assert.Equal(t, []*Ship{foe}, w.Hostiles(TeamAlly))
	assert.Equal(t, []*Ship{ally, deadAlly}, w.Hostiles(TeamFoe))
}

func TestNilWorldIsEmpty(t *testing.T) {
	var w *World
	_, ok := w.Lookup(NewEntityID())
	assert.False(t, ok)
	assert.Zero(t, w.Len())
	assert.Nil(t, w.Ships())
}

func TestShipHelpers(t *testing.T) {
	s := NewShip("s", TeamAlly, Vec3{})
	assert.True(t, s.Alive())
	assert.Equal(t, WorldUp, s.LocalUp())

	s.Up = Vec3{}
	assert.Equal(t, WorldUp, s.LocalUp(), "zero up defaults to world up")

	other := NewEntityID()
	assert.False(t, s.IsTargeting(other))
	s.TargetID = other
	assert.True(t, s.IsTargeting(other))
	assert.False(t, s.IsTargeting(NoEntity))

	s.Velocity = Vec3{3, 4, 0}
	assert.InDelta(t, 5.0, s.Speed(), 1e-9)

	s.Health = 0
	assert.False(t, s.Alive())

	var nilShip *Ship
	assert.False(t, nilShip.Alive())
}
