package wfc

// Constraint is a whole-grid predicate evaluated against a completed grid.
// Constraints are checked by the harness after a successful solve, in the
// order the config lists them, short-circuiting on the first failure.
type Constraint func(*Grid) bool

// Reachable returns a constraint requiring all cells classified as targets by
// isTarget to form a single 4-connected region. A grid with no target cells
// passes vacuously.
func Reachable(isTarget func(TileID) bool) Constraint {
	return func(g *Grid) bool {
		total := 0
		start := -1
		for i := 0; i < g.Width*g.Height; i++ {
			if isTarget(g.tiles[i]) {
				total++
				if start == -1 {
					start = i
				}
			}
		}
		if total == 0 {
			return true
		}

		// BFS flood fill from the first target cell.
		seen := make([]bool, g.Width*g.Height)
		queue := []int{start}
		seen[start] = true
		reached := 0
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			reached++

			cx, cy := cur%g.Width, cur/g.Width
			for d := North; d <= West; d++ {
				dx, dy := d.Offset()
				nx, ny := cx+dx, cy+dy
				if !g.InBounds(nx, ny) {
					continue
				}
				n := ny*g.Width + nx
				if seen[n] || !isTarget(g.tiles[n]) {
					continue
				}
				seen[n] = true
				queue = append(queue, n)
			}
		}
		return reached == total
	}
}

// ExactCount returns a constraint requiring exactly want cells of the given
// tile.
func ExactCount(id TileID, want int) Constraint {
	return func(g *Grid) bool {
		return g.CountTile(id) == want
	}
}

// MinCount returns a constraint requiring at least min cells of the given
// tile.
func MinCount(id TileID, min int) Constraint {
	return func(g *Grid) bool {
		return g.CountTile(id) >= min
	}
}

// MaxCount returns a constraint requiring at most max cells of the given
// tile.
func MaxCount(id TileID, max int) Constraint {
	return func(g *Grid) bool {
		return g.CountTile(id) <= max
	}
}

// Border returns a constraint requiring every cell on the grid's outer ring
// to hold the given tile.
func Border(id TileID) Constraint {
	return func(g *Grid) bool {
		for x := 0; x < g.Width; x++ {
			if g.At(x, 0) != id || g.At(x, g.Height-1) != id {
				return false
			}
		}
		// Corners are covered by the row checks above.
		for y := 1; y < g.Height-1; y++ {
			if g.At(0, y) != id || g.At(g.Width-1, y) != id {
				return false
			}
		}
		return true
	}
}

// Custom wraps a caller-supplied predicate as a Constraint. It adds no
// semantics and exists for uniformity at config-construction sites.
func Custom(fn func(*Grid) bool) Constraint {
	return fn
}
