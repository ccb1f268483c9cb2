package main

import "math/rand/v2"

// Cell state of a single grid position
type Cell uint8

const (
	Empty  Cell = iota // Dead cell (in default 'zero' position)
	Living             // Live cell
)

// Grid stored row-major: grid[y][x], every row has the same width
type Grid [][]Cell

// Frame is one finished generation handed from the simulation to the display.
// Frames are never mutated once built.
type Frame struct {
	Generation uint64 // 1 for the first computed generation
	Cells      Grid
}

// NewGrid allocates an all-Empty grid of the given dimensions
func NewGrid(width, height int) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]Cell, width)
	}
	return g
}

// SeedGrid sets each cell Living independently with probability ratio
func SeedGrid(width, height int, ratio float64, rng *rand.Rand) Grid {
	g := NewGrid(width, height)
	for y := range g {
		for x := range g[y] {
			if rng.Float64() < ratio {
				g[y][x] = Living
			}
		}
	}
	return g
}

func (g Grid) Height() int {
	return len(g)
}

// Width of the first row; a grid with no rows has no width
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy that shares no row storage with g
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y := range g {
		row := make([]Cell, len(g[y]))
		copy(row, g[y])
		out[y] = row
	}
	return out
}

// Resize pads new cells as Empty and truncates removed ones.
// Surviving cells keep their coordinates. Unchanged dimensions return g itself.
func (g Grid) Resize(width, height int) Grid {
	if g.Height() == height && (height == 0 || g.Width() == width) {
		return g
	}
	out := NewGrid(width, height)
	for y := range out {
		if y < len(g) {
			copy(out[y], g[y])
		}
	}
	return out
}

// Population counts Living cells
func (g Grid) Population() int {
	total := 0
	for y := range g {
		for _, c := range g[y] {
			if c == Living {
				total++
			}
		}
	}
	return total
}

// Equal reports whether both grids have the same shape and cells
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// NewFrame snapshots g so later changes to the live grid never reach the frame
func NewFrame(generation uint64, g Grid) Frame {
	return Frame{Generation: generation, Cells: g.Clone()}
}
