package wfc

import "testing"

// gridFromRows builds a grid directly for constraint tests, bypassing the
// solver.
func gridFromRows(rows [][]TileID) *Grid {
	height := len(rows)
	width := len(rows[0])
	tiles := make([]TileID, 0, width*height)
	for _, row := range rows {
		tiles = append(tiles, row...)
	}
	return newGrid(width, height, tiles)
}

func TestReachableSplitRegions(t *testing.T) {
	// Two tile-1 regions separated by a column of tile-0.
	grid := gridFromRows([][]TileID{
		{1, 0, 1},
		{1, 0, 1},
		{1, 0, 1},
	})

	reachable := Reachable(func(id TileID) bool { return id == 1 })
	if reachable(grid) {
		t.Error("Reachable() passed for two disconnected regions")
	}
}

func TestReachableConnectedRegion(t *testing.T) {
	grid := gridFromRows([][]TileID{
		{1, 1, 0},
		{0, 1, 0},
		{0, 1, 1},
	})

	reachable := Reachable(func(id TileID) bool { return id == 1 })
	if !reachable(grid) {
		t.Error("Reachable() failed for a single connected region")
	}
}

func TestReachableNoTargets(t *testing.T) {
	grid := gridFromRows([][]TileID{
		{0, 0},
		{0, 0},
	})

	reachable := Reachable(func(id TileID) bool { return id == 1 })
	if !reachable(grid) {
		t.Error("Reachable() should pass vacuously with zero target cells")
	}
}

func TestReachableDiagonalIsNotAdjacent(t *testing.T) {
	// Diagonal touching does not connect under 4-directional flood fill.
	grid := gridFromRows([][]TileID{
		{1, 0},
		{0, 1},
	})

	reachable := Reachable(func(id TileID) bool { return id == 1 })
	if reachable(grid) {
		t.Error("Reachable() treated diagonal cells as connected")
	}
}

func TestCountConstraints(t *testing.T) {
	grid := gridFromRows([][]TileID{
		{1, 0, 1},
		{0, 1, 0},
	})

	tests := []struct {
		name       string
		constraint Constraint
		want       bool
	}{
		{"ExactCountPass", ExactCount(1, 3), true},
		{"ExactCountFail", ExactCount(1, 2), false},
		{"MinCountPass", MinCount(0, 3), true},
		{"MinCountFail", MinCount(0, 4), false},
		{"MaxCountPass", MaxCount(1, 3), true},
		{"MaxCountFail", MaxCount(1, 2), false},
		{"AbsentTileExactZero", ExactCount(9, 0), true},
	}
	for _, tt := range tests {
		if got := tt.constraint(grid); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBorder(t *testing.T) {
	bordered := gridFromRows([][]TileID{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	})
	if !Border(0)(bordered) {
		t.Error("Border(0) failed for a fully walled grid")
	}

	broken := gridFromRows([][]TileID{
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{0, 0, 0, 0},
	})
	if Border(0)(broken) {
		t.Error("Border(0) passed despite a gap in the right edge")
	}
}

func TestCustomWrapsPredicate(t *testing.T) {
	grid := gridFromRows([][]TileID{{1}})
	called := false
	constraint := Custom(func(g *Grid) bool {
		called = true
		return g.At(0, 0) == 1
	})

	if !constraint(grid) {
		t.Error("Custom constraint returned false")
	}
	if !called {
		t.Error("Custom constraint was not invoked")
	}
}

func TestValidateLevelShortCircuit(t *testing.T) {
	grid := gridFromRows([][]TileID{{1}})

	var calls []string
	record := func(name string, result bool) Constraint {
		return func(*Grid) bool {
			calls = append(calls, name)
			return result
		}
	}

	ok := ValidateLevel(grid, []Constraint{
		record("first", true),
		record("second", false),
		record("third", true),
	})

	if ok {
		t.Error("ValidateLevel() = true, want false")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("Constraint calls = %v, want [first second]", calls)
	}
}

func TestValidateLevelAllPass(t *testing.T) {
	grid := gridFromRows([][]TileID{{1}})
	count := 0
	passing := Constraint(func(*Grid) bool {
		count++
		return true
	})

	if !ValidateLevel(grid, []Constraint{passing, passing, passing}) {
		t.Error("ValidateLevel() = false, want true")
	}
	if count != 3 {
		t.Errorf("Constraint invocations = %d, want 3", count)
	}
}

func TestValidateLevelEmpty(t *testing.T) {
	grid := gridFromRows([][]TileID{{1}})
	if !ValidateLevel(grid, nil) {
		t.Error("ValidateLevel() with no constraints should pass")
	}
}
