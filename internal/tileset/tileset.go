package tileset

import "github.com/samdwyer/tilewave/internal/wfc"

// TileDef defines a single tile loaded from JSON.
type TileDef struct {
	ID     int     `json:"id"`     // Tile ID as used in adjacency lists
	Name   string  `json:"name"`   // Display name (e.g., "Wall")
	Symbol string  `json:"symbol"` // Single character for rendering (e.g., "#")
	Color  string  `json:"color"`  // Hex foreground color (e.g., "#6B6B6B")
	Weight float64 `json:"weight"` // Selection weight; 0 means default (1)
	North  []int   `json:"north"`  // Permitted neighbor IDs to the north
	East   []int   `json:"east"`   // Permitted neighbor IDs to the east
	South  []int   `json:"south"`  // Permitted neighbor IDs to the south
	West   []int   `json:"west"`   // Permitted neighbor IDs to the west
}

// SymbolRune returns the symbol as a rune for rendering.
func (t *TileDef) SymbolRune() rune {
	if len(t.Symbol) == 0 {
		return '?'
	}
	return rune(t.Symbol[0])
}

// TilesetDef is one named tileset from tilesets.json.
type TilesetDef struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Tiles []TileDef `json:"tiles"`
}

// TilesetsFile represents the structure of tilesets.json.
type TilesetsFile struct {
	Tilesets []TilesetDef `json:"tilesets"`
}

// LoadTilesets loads tileset definitions from the embedded tilesets.json.
func LoadTilesets() ([]TilesetDef, error) {
	file, err := Load[TilesetsFile]("tilesets.json")
	if err != nil {
		return nil, err
	}
	return file.Tilesets, nil
}

// TileSet converts the definition into the solver's TileSet form.
func (d *TilesetDef) TileSet() wfc.TileSet {
	ts := wfc.TileSet{
		Tiles:   make(map[wfc.TileID]wfc.AdjacencyRule, len(d.Tiles)),
		Weights: make(map[wfc.TileID]float64, len(d.Tiles)),
	}
	for _, t := range d.Tiles {
		ts.Tiles[wfc.TileID(t.ID)] = wfc.AdjacencyRule{
			wfc.North: toTileIDs(t.North),
			wfc.East:  toTileIDs(t.East),
			wfc.South: toTileIDs(t.South),
			wfc.West:  toTileIDs(t.West),
		}
		if t.Weight > 0 {
			ts.Weights[wfc.TileID(t.ID)] = t.Weight
		}
	}
	return ts
}

// TileByID returns the tile definition with the given ID, or nil if the
// tileset has none.
func (d *TilesetDef) TileByID(id wfc.TileID) *TileDef {
	for i := range d.Tiles {
		if wfc.TileID(d.Tiles[i].ID) == id {
			return &d.Tiles[i]
		}
	}
	return nil
}

func toTileIDs(ids []int) []wfc.TileID {
	out := make([]wfc.TileID, len(ids))
	for i, id := range ids {
		out[i] = wfc.TileID(id)
	}
	return out
}
