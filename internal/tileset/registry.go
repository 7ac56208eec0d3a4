package tileset

import "errors"

// Registry holds loaded tileset definitions and provides lookup utilities.
type Registry struct {
	byID map[string]*TilesetDef
	all  []TilesetDef
}

// NewRegistry creates a registry from loaded tileset definitions.
func NewRegistry(tilesets []TilesetDef) *Registry {
	registry := &Registry{
		byID: make(map[string]*TilesetDef, len(tilesets)),
		all:  tilesets,
	}
	for i := range tilesets {
		registry.byID[tilesets[i].ID] = &tilesets[i]
	}
	return registry
}

// LoadRegistry loads and creates a registry from the embedded tilesets.json.
func LoadRegistry() (*Registry, error) {
	tilesets, err := LoadTilesets()
	if err != nil {
		return nil, err
	}
	if len(tilesets) == 0 {
		return nil, errors.New("no tilesets loaded from tilesets.json")
	}
	return NewRegistry(tilesets), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tileset definition with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *TilesetDef {
	return r.byID[id]
}

// IDs returns the IDs of all loaded tilesets.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.all))
	for i := range r.all {
		ids = append(ids, r.all[i].ID)
	}
	return ids
}

// All returns all tileset definitions.
func (r *Registry) All() []TilesetDef {
	return r.all
}

// Count returns the number of tilesets in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
