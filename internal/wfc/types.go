// Package wfc implements a wave function collapse generator: a
// constraint-propagation solver that fills a rectangular grid with tile IDs
// so that every pair of adjacent cells satisfies the tileset's directional
// adjacency rules, with backtracking on local contradictions and an outer
// retry loop that also enforces whole-grid constraints.
package wfc

import "time"

// TileID identifies a tile. IDs are caller-assigned non-negative integers;
// the solver never interprets their meaning.
type TileID int

// Direction is one of the four cardinal neighbor directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// numDirections is the size of the cardinal direction space.
const numDirections = 4

// Offset returns the (dx, dy) grid offset for the direction. Y grows
// downward, matching row-major grid order.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// AdjacencyRule maps each direction to the set of tile IDs permitted as the
// neighbor in that direction. Rules are not required to be symmetric: the
// engine accepts a tileset where A permits B to its east while B forbids A to
// its west; such rules may simply make some layouts impossible.
type AdjacencyRule map[Direction][]TileID

// TileSet describes the tiles available to the solver.
type TileSet struct {
	// Tiles maps each tile ID to its adjacency rule.
	Tiles map[TileID]AdjacencyRule
	// Weights holds optional selection weights. A missing entry defaults to 1.
	Weights map[TileID]float64
}

// Default budgets for the generation harness.
const (
	DefaultMaxRetries    = 100
	DefaultMaxBacktracks = 1000
)

// Config describes one generation request.
type Config struct {
	TileSet TileSet
	// Width and Height are the grid dimensions. Both must be positive;
	// non-positive dimensions make every solver attempt fail.
	Width  int
	Height int
	// Seed is the base seed. Retry n of the harness runs the solver with
	// Seed+n, so a single config explores a deterministic seed sequence.
	Seed int64
	// Constraints are evaluated in order against each completed grid;
	// validation stops at the first failure.
	Constraints []Constraint
	// MaxRetries bounds the harness retry loop (default DefaultMaxRetries).
	MaxRetries int
	// MaxBacktracks bounds backtrack operations within one solver run
	// (default DefaultMaxBacktracks).
	MaxBacktracks int
}

// withDefaults returns the config with zero budgets replaced by defaults.
func (c Config) withDefaults() Config {
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxBacktracks == 0 {
		c.MaxBacktracks = DefaultMaxBacktracks
	}
	return c
}

// Result is the outcome of a Generate call.
type Result struct {
	// Success reports whether a grid satisfying the tileset and all
	// constraints was produced. Failure is a normal result, never a panic;
	// callers must check this field before using Grid.
	Success bool
	// Grid is the generated grid, or nil on failure.
	Grid *Grid
	// Retries is the number of outer attempts consumed before success, or
	// MaxRetries+1 when every attempt was exhausted.
	Retries int
	// Elapsed is the wall-clock duration of the whole Generate call.
	Elapsed time.Duration
}
