package server

import (
	"math"

	"github.com/lab1702/wingman/game"
)

// SpatialGrid provides O(1) average case lookup for nearby ships using a
// 3D grid-based spatial hash. It turns the per-agent avoidance scan from
// O(n²) into O(n) average case.
type SpatialGrid struct {
	cellSize float64
	half     float64 // the grid covers [-half, half) on every axis
	n        int     // cells per axis
	cells    [][]int // Each cell contains indices into the indexed slice
	ships    []*game.Ship
}

// NewSpatialGrid creates a grid covering a cube of the given half extent.
func NewSpatialGrid(half, cellSize float64) *SpatialGrid {
	n := int(math.Ceil(2 * half / cellSize))
	if n < 1 {
		n = 1
	}
	return &SpatialGrid{
		cellSize: cellSize,
		half:     half,
		n:        n,
		cells:    make([][]int, n*n*n),
	}
}

// Clear resets the grid for a new frame
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0] // Reuse underlying array
	}
	g.ships = g.ships[:0]
}

// axisCell maps a coordinate to a cell column, clamped to the grid.
func (g *SpatialGrid) axisCell(v float64) int {
	c := int(math.Floor((v + g.half) / g.cellSize))
	if c < 0 {
		return 0
	}
	if c >= g.n {
		return g.n - 1
	}
	return c
}

func (g *SpatialGrid) index(x, y, z int) int {
	return (z*g.n+y)*g.n + x
}

// Insert adds a ship to the grid
func (g *SpatialGrid) Insert(s *game.Ship) {
	i := len(g.ships)
	g.ships = append(g.ships, s)
	p := s.Position
	idx := g.index(g.axisCell(p.X()), g.axisCell(p.Y()), g.axisCell(p.Z()))
	g.cells[idx] = append(g.cells[idx], i)
}

// GetNearby returns the ships in the cell containing pos and the 26 cells
// around it. The caller must still perform exact distance checks.
func (g *SpatialGrid) GetNearby(pos game.Vec3) []*game.Ship {
	cx, cy, cz := g.axisCell(pos.X()), g.axisCell(pos.Y()), g.axisCell(pos.Z())

	var result []*game.Ship
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				// Skip out-of-bounds cells
				if x < 0 || x >= g.n || y < 0 || y >= g.n || z < 0 || z >= g.n {
					continue
				}
				for _, i := range g.cells[g.index(x, y, z)] {
					result = append(result, g.ships[i])
				}
			}
		}
	}
	return result
}

// IndexShips populates the grid with all live ships
func (g *SpatialGrid) IndexShips(ships []*game.Ship) {
	g.Clear()
	for _, s := range ships {
		if s.Alive() {
			g.Insert(s)
		}
	}
}
