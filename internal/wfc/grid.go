package wfc

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Grid is a fully determined generation result. It is immutable once built:
// the solver constructs it in one shot when every cell has collapsed, and
// constraints only ever read it.
type Grid struct {
	Width  int
	Height int
	tiles  []TileID // row-major, len == Width*Height
}

// newGrid wraps a row-major tile slice. The slice is owned by the grid.
func newGrid(width, height int, tiles []TileID) *Grid {
	return &Grid{Width: width, Height: height, tiles: tiles}
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y), or -1 if the position is out of bounds.
func (g *Grid) At(x, y int) TileID {
	if !g.InBounds(x, y) {
		return -1
	}
	return g.tiles[y*g.Width+x]
}

// CountTile returns the number of cells holding the given tile ID.
func (g *Grid) CountTile(id TileID) int {
	count := 0
	for _, t := range g.tiles {
		if t == id {
			count++
		}
	}
	return count
}

// FindTile returns the position of the first cell (row-major order) holding
// the given tile ID, or ok=false if the grid contains none.
func (g *Grid) FindTile(id TileID) (x, y int, ok bool) {
	for i, t := range g.tiles {
		if t == id {
			return i % g.Width, i / g.Width, true
		}
	}
	return 0, 0, false
}

// Hash returns an xxhash fingerprint of the grid's dimensions and contents.
// Two grids hash equal iff they are identical, which makes the fingerprint a
// cheap way to compare generations in reproducibility checks and batch QA.
func (g *Grid) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Height))
	h.Write(buf[:])
	for _, t := range g.tiles {
		binary.LittleEndian.PutUint64(buf[:], uint64(t))
		h.Write(buf[:])
	}
	return h.Sum64()
}
