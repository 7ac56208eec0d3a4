package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilewave/internal/tileset"
	"github.com/samdwyer/tilewave/internal/wfc"
)

// Renderer draws generated grids using the symbols and colors of a tileset
// definition.
type Renderer struct {
	screen  *Screen
	symbols map[wfc.TileID]rune
	styles  map[wfc.TileID]tcell.Style
}

// NewRenderer creates a renderer for the given screen and tileset. Tiles
// without a parseable color fall back to the default style.
func NewRenderer(screen *Screen, def *tileset.TilesetDef) *Renderer {
	r := &Renderer{
		screen:  screen,
		symbols: make(map[wfc.TileID]rune, len(def.Tiles)),
		styles:  make(map[wfc.TileID]tcell.Style, len(def.Tiles)),
	}
	for i := range def.Tiles {
		t := &def.Tiles[i]
		id := wfc.TileID(t.ID)
		r.symbols[id] = t.SymbolRune()

		style := tcell.StyleDefault
		if color, err := tileset.ParseHexColor(t.Color); err == nil {
			style = style.Foreground(color)
		}
		r.styles[id] = style
	}
	return r
}

// Render draws the grid with an inspection cursor at (cursorX, cursorY).
func (r *Renderer) Render(grid *wfc.Grid, cursorX, cursorY int) {
	r.screen.Clear()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			id := grid.At(x, y)
			symbol, ok := r.symbols[id]
			if !ok {
				symbol = '?'
			}
			style := r.styles[id]
			if x == cursorX && y == cursorY {
				style = style.Reverse(true)
			}
			r.screen.SetContent(x, y, symbol, style)
		}
	}

	r.screen.Show()
}

// RenderStatus displays a status message at the given row.
func (r *Renderer) RenderStatus(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
	r.screen.Show()
}
