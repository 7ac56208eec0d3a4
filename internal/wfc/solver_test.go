package wfc

import (
	"context"
	"testing"
)

// singleTileSet holds one tile (ID 1) that allows only itself everywhere.
func singleTileSet() TileSet {
	self := []TileID{1}
	return TileSet{
		Tiles: map[TileID]AdjacencyRule{
			1: {North: self, East: self, South: self, West: self},
		},
	}
}

// checkerTileSet holds two tiles that each allow only the other as neighbor.
func checkerTileSet() TileSet {
	return TileSet{
		Tiles: map[TileID]AdjacencyRule{
			0: {North: []TileID{1}, East: []TileID{1}, South: []TileID{1}, West: []TileID{1}},
			1: {North: []TileID{0}, East: []TileID{0}, South: []TileID{0}, West: []TileID{0}},
		},
	}
}

// openTileSet holds two tiles that both permit both as neighbors.
func openTileSet() TileSet {
	both := []TileID{0, 1}
	return TileSet{
		Tiles: map[TileID]AdjacencyRule{
			0: {North: both, East: both, South: both, West: both},
			1: {North: both, East: both, South: both, West: both},
		},
	}
}

// assertAdjacency fails the test if any adjacent pair of cells violates the
// tileset's directional rules.
func assertAdjacency(t *testing.T, grid *Grid, ts TileSet) {
	t.Helper()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			a := grid.At(x, y)
			for d := North; d <= West; d++ {
				dx, dy := d.Offset()
				if !grid.InBounds(x+dx, y+dy) {
					continue
				}
				b := grid.At(x+dx, y+dy)
				if !containsTile(ts.Tiles[a][d], b) {
					t.Fatalf("Tile %d at (%d,%d) does not permit %d to its %s", a, x, y, b, d)
				}
			}
		}
	}
}

func containsTile(ids []TileID, id TileID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func TestSingleTileOneByOne(t *testing.T) {
	result := Generate(context.Background(), Config{
		TileSet: singleTileSet(),
		Width:   1,
		Height:  1,
		Seed:    42,
	})

	if !result.Success {
		t.Fatal("Generate() failed for a trivially satisfiable config")
	}
	if got := result.Grid.At(0, 0); got != 1 {
		t.Errorf("Grid.At(0,0) = %d, want 1", got)
	}
	if result.Retries != 0 {
		t.Errorf("Retries = %d, want 0", result.Retries)
	}
}

func TestSingleTileTwoByTwo(t *testing.T) {
	result := Generate(context.Background(), Config{
		TileSet: singleTileSet(),
		Width:   2,
		Height:  2,
		Seed:    42,
	})

	if !result.Success {
		t.Fatal("Generate() failed for a trivially satisfiable config")
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := result.Grid.At(x, y); got != 1 {
				t.Errorf("Grid.At(%d,%d) = %d, want 1", x, y, got)
			}
		}
	}
}

func TestCheckerboard(t *testing.T) {
	ts := checkerTileSet()
	result := Generate(context.Background(), Config{
		TileSet: ts,
		Width:   4,
		Height:  4,
		Seed:    42,
	})

	if !result.Success {
		t.Fatal("Generate() failed for the checkerboard tileset")
	}

	grid := result.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if x+1 < grid.Width && grid.At(x, y) == grid.At(x+1, y) {
				t.Errorf("Horizontal neighbors at (%d,%d) both hold %d", x, y, grid.At(x, y))
			}
			if y+1 < grid.Height && grid.At(x, y) == grid.At(x, y+1) {
				t.Errorf("Vertical neighbors at (%d,%d) both hold %d", x, y, grid.At(x, y))
			}
		}
	}
	assertAdjacency(t, grid, ts)
}

func TestCompletenessOnSuccess(t *testing.T) {
	ts := openTileSet()
	result := Generate(context.Background(), Config{
		TileSet: ts,
		Width:   8,
		Height:  6,
		Seed:    7,
	})

	if !result.Success {
		t.Fatal("Generate() failed for an open tileset")
	}
	for y := 0; y < result.Grid.Height; y++ {
		for x := 0; x < result.Grid.Width; x++ {
			id := result.Grid.At(x, y)
			if _, ok := ts.Tiles[id]; !ok {
				t.Errorf("Grid.At(%d,%d) = %d, not a tileset member", x, y, id)
			}
		}
	}
}

func TestAdjacencyValidity(t *testing.T) {
	// Wall/floor/water rules: water refuses walls, everything else is open.
	wallFloor := []TileID{0, 1}
	all := []TileID{0, 1, 2}
	floorWater := []TileID{1, 2}
	ts := TileSet{
		Tiles: map[TileID]AdjacencyRule{
			0: {North: wallFloor, East: wallFloor, South: wallFloor, West: wallFloor},
			1: {North: all, East: all, South: all, West: all},
			2: {North: floorWater, East: floorWater, South: floorWater, West: floorWater},
		},
		Weights: map[TileID]float64{0: 1, 1: 2, 2: 0.5},
	}

	for _, seed := range []int64{1, 42, 1000} {
		result := Generate(context.Background(), Config{
			TileSet: ts,
			Width:   12,
			Height:  9,
			Seed:    seed,
		})
		if !result.Success {
			t.Fatalf("Generate() failed for seed %d", seed)
		}
		assertAdjacency(t, result.Grid, ts)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := Config{
		TileSet: openTileSet(),
		Width:   8,
		Height:  8,
		Seed:    42,
	}

	r1 := Generate(context.Background(), cfg)
	r2 := Generate(context.Background(), cfg)

	if !r1.Success || !r2.Success {
		t.Fatal("Generate() failed for an open tileset")
	}
	if r1.Retries != r2.Retries {
		t.Errorf("Retries mismatch: %d != %d", r1.Retries, r2.Retries)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if r1.Grid.At(x, y) != r2.Grid.At(x, y) {
				t.Errorf("Tile mismatch at (%d,%d): %d != %d",
					x, y, r1.Grid.At(x, y), r2.Grid.At(x, y))
			}
		}
	}
	if r1.Grid.Hash() != r2.Grid.Hash() {
		t.Error("Hashes of identically seeded grids differ")
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	cfg := Config{
		TileSet: openTileSet(),
		Width:   8,
		Height:  8,
	}

	cfg.Seed = 42
	r1 := Generate(context.Background(), cfg)
	cfg.Seed = 99
	r2 := Generate(context.Background(), cfg)

	if !r1.Success || !r2.Success {
		t.Fatal("Generate() failed for an open tileset")
	}
	if r1.Grid.Hash() == r2.Grid.Hash() {
		t.Error("Grids generated from different seeds should differ")
	}
}

func TestUnsatisfiableTilesetFails(t *testing.T) {
	// A single tile with no permitted neighbors at all: any grid wider than
	// one cell forces a contradiction on the first propagation, and
	// backtracking can never recover.
	ts := TileSet{
		Tiles: map[TileID]AdjacencyRule{
			0: {},
		},
	}

	result := Generate(context.Background(), Config{
		TileSet:    ts,
		Width:      2,
		Height:     2,
		Seed:       1,
		MaxRetries: 2,
	})

	if result.Success {
		t.Fatal("Generate() succeeded for an unsatisfiable tileset")
	}
	if result.Grid != nil {
		t.Error("Failed result should carry a nil grid")
	}
	if result.Retries != 3 {
		t.Errorf("Retries = %d, want 3", result.Retries)
	}
}

func TestWeightBias(t *testing.T) {
	// With an open tileset and a heavily skewed weight, the favored tile
	// should dominate a large grid.
	ts := openTileSet()
	ts.Weights = map[TileID]float64{0: 100, 1: 1}

	result := Generate(context.Background(), Config{
		TileSet: ts,
		Width:   20,
		Height:  20,
		Seed:    5,
	})
	if !result.Success {
		t.Fatal("Generate() failed for an open tileset")
	}

	heavy := result.Grid.CountTile(0)
	light := result.Grid.CountTile(1)
	if heavy <= light {
		t.Errorf("Tile 0 (weight 100) appeared %d times vs %d for tile 1 (weight 1)", heavy, light)
	}
}

func TestNonPositiveDimensionsFail(t *testing.T) {
	result := Generate(context.Background(), Config{
		TileSet:    singleTileSet(),
		Width:      0,
		Height:     4,
		Seed:       1,
		MaxRetries: 1,
	})
	if result.Success {
		t.Error("Generate() succeeded for a zero-width grid")
	}
}
