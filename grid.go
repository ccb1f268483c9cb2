package main

// Standard Life rule applied to one cell
func nextState(current Cell, livingNeighbors int) Cell {
	switch {
	case current == Living && (livingNeighbors == 2 || livingNeighbors == 3):
		return Living // Survival
	case current == Empty && livingNeighbors == 3:
		return Living // Birth
	default:
		return Empty
	}
}

// LivingNeighbors counts the 8 toroidal neighbours of (x, y).
// Rows and columns wrap, so -1 is the last index and width/height is 0.
func (g Grid) LivingNeighbors(x, y int) int {
	height := len(g)
	width := len(g[y])

	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny := (y + dy + height) % height
			nx := (x + dx + width) % width
			if g[ny][nx] == Living {
				count++
			}
		}
	}
	return count
}

// Step computes the next generation into a fresh grid.
// g is only read, so no update is visible to another cell in the same step.
func Step(g Grid) Grid {
	next := NewGrid(g.Width(), g.Height())
	stepRows(g, next, 0, g.Height())
	return next
}

// Compute rows [from, to) of next from g
func stepRows(g, next Grid, from, to int) {
	for y := from; y < to; y++ {
		for x := range g[y] {
			next[y][x] = nextState(g[y][x], g.LivingNeighbors(x, y))
		}
	}
}
