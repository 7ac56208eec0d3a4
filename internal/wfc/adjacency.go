package wfc

import (
	"math/bits"
	"sort"
)

// bitset is a fixed-capacity set of dense tile indices.
type bitset []uint64

// newBitset returns an empty bitset with capacity for n indices.
func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) has(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

func (b bitset) set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

func (b bitset) clear(i int) {
	b[i>>6] &^= 1 << uint(i&63)
}

// fill sets the first n indices.
func (b bitset) fill(n int) {
	for i := range b {
		b[i] = 0
	}
	for i := 0; i < n; i++ {
		b.set(i)
	}
}

// only resets the set to contain exactly index i.
func (b bitset) only(i int) {
	for w := range b {
		b[w] = 0
	}
	b.set(i)
}

func (b bitset) popcount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

// tileModel is the dense per-run form of a TileSet. Tile IDs are remapped to
// indices 0..numTiles-1 (ascending ID order, so map iteration order never
// leaks into results) and adjacency rules become per-direction bitsets, which
// turns the propagation inner loop into O(1) membership checks.
type tileModel struct {
	numTiles int
	ids      []TileID  // dense index -> tile ID
	weights  []float64 // dense index -> selection weight
	// allowed[i][d] is the set of dense indices permitted as the neighbor of
	// tile i in direction d.
	allowed [][numDirections]bitset
}

// newTileModel builds the dense model from a tileset. An empty tileset yields
// a model with numTiles == 0, which every solver run rejects.
func newTileModel(ts TileSet) *tileModel {
	ids := make([]TileID, 0, len(ts.Tiles))
	for id := range ts.Tiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	m := &tileModel{
		numTiles: len(ids),
		ids:      ids,
		weights:  make([]float64, len(ids)),
		allowed:  make([][numDirections]bitset, len(ids)),
	}

	index := make(map[TileID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	for i, id := range ids {
		m.weights[i] = 1
		if w, ok := ts.Weights[id]; ok {
			m.weights[i] = w
		}
		rule := ts.Tiles[id]
		for d := North; d <= West; d++ {
			set := newBitset(m.numTiles)
			for _, neighbor := range rule[d] {
				// Neighbors outside the tileset are ignored rather than
				// rejected; they can never appear in a grid anyway.
				if j, ok := index[neighbor]; ok {
					set.set(j)
				}
			}
			m.allowed[i][d] = set
		}
	}
	return m
}
