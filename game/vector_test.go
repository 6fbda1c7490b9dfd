package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestUnitOrZero(t *testing.T) {
	assert.Equal(t, Vec3{}, UnitOrZero(Vec3{}))
	assert.Equal(t, Vec3{}, UnitOrZero(Vec3{1e-9, 0, 0}))

	u := UnitOrZero(Vec3{3, 0, 4})
	assert.InDelta(t, 1.0, u.Len(), tolerance)
	assert.InDelta(t, 0.6, u.X(), tolerance)
	assert.InDelta(t, 0.8, u.Z(), tolerance)
}

func TestBasis(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
		up      Vec3
	}{
		{"default heading", WorldForward, WorldUp},
		{"diagonal", Vec3{1, 1, -1}, WorldUp},
		{"straight up", WorldUp, WorldUp},
		{"straight down", Vec3{0, -5, 0}, WorldUp},
		{"zero up", Vec3{1, 0, 0}, Vec3{}},
		{"up along fallback", FallbackAxis, FallbackAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right, up := Basis(tt.forward, tt.up)
			require.True(t, Finite(right))
			require.True(t, Finite(up))
			assert.InDelta(t, 1.0, right.Len(), 1e-6, "right must be unit length")
			assert.InDelta(t, 1.0, up.Len(), 1e-6, "up must be unit length")

			f := UnitOrZero(tt.forward)
			assert.InDelta(t, 0.0, right.Dot(f), 1e-6)
			assert.InDelta(t, 0.0, up.Dot(f), 1e-6)
			assert.InDelta(t, 0.0, right.Dot(up), 1e-6)
		})
	}
}

func TestBasisDefaultOrientation(t *testing.T) {
	right, up := Basis(WorldForward, WorldUp)
	assert.InDelta(t, 1.0, right.X(), tolerance, "right of -Z heading is +X")
	assert.InDelta(t, 1.0, up.Y(), tolerance)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vec3{0, 0, 0}, Vec3{3, 4, 0}), tolerance)
	assert.InDelta(t, 0.0, Distance(Vec3{1, 2, 3}, Vec3{1, 2, 3}), tolerance)
}

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, -1, 1))
	assert.Equal(t, -1.0, Clamp(-5, -1, 1))
	assert.Equal(t, 0.25, Clamp(0.25, -1, 1))

	assert.Equal(t, 1.0, Sign(0.1))
	assert.Equal(t, -1.0, Sign(-3))
	assert.Equal(t, 0.0, Sign(0))
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(Vec3{1, 2, 3}))
	assert.False(t, Finite(Vec3{math.NaN(), 0, 0}))
	assert.False(t, Finite(Vec3{0, math.Inf(1), 0}))
}
