package wfc

import "github.com/samdwyer/tilewave/internal/rng"

// cell is the solver-side state of one grid position. Invariant:
// count == popcount(possible). count == 0 is a contradiction; count == 1
// means the cell is determined; collapsed is set only once the cell has been
// chosen as a pivot and forced to a single tile.
type cell struct {
	possible  bitset
	count     int
	collapsed int // dense tile index, or -1
}

// snapshot captures everything needed to undo one collapse decision: the full
// cell array before the collapse, the PRNG state before the weighted draw,
// and the choice that was made (excluded permanently when backtracking away
// from it).
type snapshot struct {
	cells  []cell
	rand   rng.State
	cell   int
	choice int
}

// solver holds the mutable state of a single seed attempt. All of it is local
// to one run, so independent runs are safe to execute in parallel.
type solver struct {
	model         *tileModel
	width, height int
	cells         []cell
	rand          rng.State
	stack         []snapshot
	backtracks    int
	maxBacktracks int
}

// runSolver attempts to produce a fully collapsed grid from a single seed.
// It returns ok=false when the attempt is unsatisfiable within the backtrack
// budget, the tileset is empty, or the dimensions are not positive.
func runSolver(model *tileModel, width, height int, seed int64, maxBacktracks int) (*Grid, bool) {
	if model.numTiles == 0 || width <= 0 || height <= 0 {
		return nil, false
	}

	s := &solver{
		model:         model,
		width:         width,
		height:        height,
		cells:         make([]cell, width*height),
		rand:          rng.Seed(seed),
		maxBacktracks: maxBacktracks,
	}
	for i := range s.cells {
		possible := newBitset(model.numTiles)
		possible.fill(model.numTiles)
		s.cells[i] = cell{possible: possible, count: model.numTiles, collapsed: -1}
	}
	return s.run()
}

func (s *solver) run() (*Grid, bool) {
	for {
		idx, minCount, done := s.selectCell()
		if done {
			return s.readout(), true
		}
		if minCount == 0 {
			if !s.backtrack() {
				return nil, false
			}
			continue
		}
		s.collapse(idx)
		if !s.propagate(idx) {
			if !s.backtrack() {
				return nil, false
			}
		}
	}
}

// selectCell picks the next pivot: the uncollapsed cell with the fewest
// remaining possibilities, breaking ties uniformly at random so collapse
// order depends on the seed rather than cell position. done=true means no
// uncollapsed cells remain. A zero minCount is a contradiction; no PRNG draw
// is consumed in that case.
func (s *solver) selectCell() (idx, minCount int, done bool) {
	minCount = -1
	var candidates []int
	for i := range s.cells {
		c := &s.cells[i]
		if c.collapsed != -1 {
			continue
		}
		switch {
		case minCount == -1 || c.count < minCount:
			minCount = c.count
			candidates = candidates[:0]
			candidates = append(candidates, i)
		case c.count == minCount:
			candidates = append(candidates, i)
		}
	}
	if minCount == -1 {
		return 0, 0, true
	}
	if minCount == 0 {
		return candidates[0], 0, false
	}
	pick, next := s.rand.IntRange(0, len(candidates)-1)
	s.rand = next
	return candidates[pick], minCount, false
}

// collapse forces the cell at idx down to one tile, chosen among its
// remaining possibilities with probability proportional to weight. The
// pre-collapse state is pushed onto the backtrack stack first.
func (s *solver) collapse(idx int) {
	c := &s.cells[idx]

	total := 0.0
	for t := 0; t < s.model.numTiles; t++ {
		if c.possible.has(t) {
			total += s.model.weights[t]
		}
	}

	randBefore := s.rand
	f, next := s.rand.Float64()
	s.rand = next

	// Walk the possibilities subtracting weight; the last possible tile is
	// the fallback for floating-point edge cases.
	target := f * total
	choice := -1
	for t := 0; t < s.model.numTiles; t++ {
		if !c.possible.has(t) {
			continue
		}
		choice = t
		target -= s.model.weights[t]
		if target <= 0 {
			break
		}
	}

	s.stack = append(s.stack, snapshot{
		cells:  cloneCells(s.cells),
		rand:   randBefore,
		cell:   idx,
		choice: choice,
	})

	c.possible.only(choice)
	c.count = 1
	c.collapsed = choice
}

// propagate runs an arc-consistency sweep from the cell at start. For every
// neighbor it removes tiles no longer supported by any possibility of the
// current cell, re-enqueueing changed cells until a fixpoint. It returns
// false as soon as any cell's possibility set becomes empty.
func (s *solver) propagate(start int) bool {
	queue := []int{start}
	queued := make([]bool, len(s.cells))
	queued[start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		queued[cur] = false

		cx, cy := cur%s.width, cur/s.width
		for d := North; d <= West; d++ {
			dx, dy := d.Offset()
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= s.width || ny < 0 || ny >= s.height {
				continue
			}
			n := ny*s.width + nx
			nc := &s.cells[n]

			changed := false
			for t := 0; t < s.model.numTiles; t++ {
				if !nc.possible.has(t) {
					continue
				}
				if s.supported(cur, d, t) {
					continue
				}
				nc.possible.clear(t)
				nc.count--
				changed = true
			}
			if !changed {
				continue
			}
			if nc.count == 0 {
				return false
			}
			if !queued[n] {
				queued[n] = true
				queue = append(queue, n)
			}
		}
	}
	return true
}

// supported reports whether any tile still possible in the cell at cur
// permits t as its neighbor in direction d.
func (s *solver) supported(cur int, d Direction, t int) bool {
	c := &s.cells[cur]
	for u := 0; u < s.model.numTiles; u++ {
		if c.possible.has(u) && s.model.allowed[u][d].has(t) {
			return true
		}
	}
	return false
}

// backtrack pops snapshots until it reaches a decision with untried
// alternatives: cell states and PRNG are restored to exactly their
// pre-collapse values, and the tile chosen at that point is permanently
// excluded. It returns false when the stack or the backtrack budget is
// exhausted, failing the run.
func (s *solver) backtrack() bool {
	for {
		if s.backtracks >= s.maxBacktracks || len(s.stack) == 0 {
			return false
		}
		s.backtracks++

		snap := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		s.cells = snap.cells
		s.rand = snap.rand

		c := &s.cells[snap.cell]
		c.possible.clear(snap.choice)
		c.count--
		if c.count > 0 {
			return true
		}
		// The cell is out of alternatives entirely; undo the decision
		// before it as well.
	}
}

// readout converts the collapsed cell array into an immutable Grid, mapping
// dense indices back to the caller's tile IDs.
func (s *solver) readout() *Grid {
	tiles := make([]TileID, len(s.cells))
	for i := range s.cells {
		tiles[i] = s.model.ids[s.cells[i].collapsed]
	}
	return newGrid(s.width, s.height, tiles)
}

// cloneCells deep-copies a cell array, including each possibility bitset.
func cloneCells(cells []cell) []cell {
	out := make([]cell, len(cells))
	for i := range cells {
		out[i] = cell{
			possible:  cells[i].possible.clone(),
			count:     cells[i].count,
			collapsed: cells[i].collapsed,
		}
	}
	return out
}
