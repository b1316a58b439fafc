// Package tilemap provides a generic tile grid: a catalog of tile definitions,
// a replaceable 2D map of tile keys, and pixel-to-tile lookups.
package tilemap

import (
	"image/color"
	"math"
)

// Grid is a tile map over keys of type K carrying descriptions of type D.
//
// Rows of the map are not required to share a length; the grid never pads or
// truncates them. Keys missing from the catalog are skipped when drawing and
// yield no description on lookup.
//
// Grid has no internal locking. Draw and the lookups only read, so they may
// run concurrently as long as SetMap is not called at the same time.
type Grid[K comparable, D any] struct {
	tileWidth  int
	tileHeight int
	catalog    Catalog[K, D]
	rows       [][]K
}

// New creates a grid with a fixed catalog and tile size in pixels.
// The grid starts without a map.
func New[K comparable, D any](catalog Catalog[K, D], tileWidth, tileHeight int) *Grid[K, D] {
	return &Grid[K, D]{
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		catalog:    catalog,
	}
}

// SetMap replaces the active map. A nil map clears it.
func (g *Grid[K, D]) SetMap(rows [][]K) {
	g.rows = rows
}

// Map returns the active map, or nil when none is set.
func (g *Grid[K, D]) Map() [][]K {
	return g.rows
}

// Rows returns the number of rows in the active map.
func (g *Grid[K, D]) Rows() int {
	return len(g.rows)
}

// TileSize returns the tile dimensions in pixels.
func (g *Grid[K, D]) TileSize() (width, height int) {
	return g.tileWidth, g.tileHeight
}

// PixelSize returns the extent of the active map in unscaled pixels,
// using the longest row for the width.
func (g *Grid[K, D]) PixelSize() (width, height float64) {
	cols := 0
	for _, row := range g.rows {
		cols = max(cols, len(row))
	}
	return float64(cols * g.tileWidth), float64(len(g.rows) * g.tileHeight)
}

// Definition returns the catalog entry for key.
func (g *Grid[K, D]) Definition(key K) (Definition[D], bool) {
	def, ok := g.catalog[key]
	return def, ok
}

// KeyAt returns the key stored at row, col.
func (g *Grid[K, D]) KeyAt(row, col int) (K, bool) {
	var zero K
	if row < 0 || row >= len(g.rows) {
		return zero, false
	}
	line := g.rows[row]
	if col < 0 || col >= len(line) {
		return zero, false
	}
	return line[col], true
}

// CellAtPixel converts a pixel position into a cell index.
// It reports false for positions outside the map, and for an axis whose tile
// size or scale is zero.
func (g *Grid[K, D]) CellAtPixel(x, y, scaleX, scaleY float64) (row, col int, ok bool) {
	row, ok = cellIndex(y, float64(g.tileHeight)*scaleY, len(g.rows))
	if !ok {
		return 0, 0, false
	}
	col, ok = cellIndex(x, float64(g.tileWidth)*scaleX, len(g.rows[row]))
	if !ok {
		return 0, 0, false
	}
	return row, col, true
}

// cellIndex returns floor(pos/size) when it lands in [0, limit).
func cellIndex(pos, size float64, limit int) (int, bool) {
	if size == 0 {
		return 0, false
	}
	idx := math.Floor(pos / size)
	// NaN fails both comparisons, hence the negated form.
	if !(idx >= 0 && idx < float64(limit)) {
		return 0, false
	}
	return int(idx), true
}

// TileAtPixel returns the description of the tile under x, y once the tile
// size is multiplied by the given scale. It returns nil when the position is
// off the map, the cell's key is not in the catalog, or the tile has no
// description. The returned value is owned by the catalog and must not be
// modified.
func (g *Grid[K, D]) TileAtPixel(x, y, scaleX, scaleY float64) *D {
	row, col, ok := g.CellAtPixel(x, y, scaleX, scaleY)
	if !ok {
		return nil
	}
	def, ok := g.catalog[g.rows[row][col]]
	if !ok {
		return nil
	}
	return def.Description
}

// TileAt is TileAtPixel using the scale reported by s.
func (g *Grid[K, D]) TileAt(x, y float64, s Scaler) *D {
	sx, sy := s.RenderScale()
	return g.TileAtPixel(x, y, sx, sy)
}

// Draw renders every cell whose key is in the catalog, row by row from the
// top, left to right within a row. Every cell is visited on each call.
func (g *Grid[K, D]) Draw(r Renderer) {
	w, h := float64(g.tileWidth), float64(g.tileHeight)
	for line, row := range g.rows {
		for column, key := range row {
			def, ok := g.catalog[key]
			if !ok {
				continue
			}
			x, y := w*float64(column), h*float64(line)
			switch src := def.Source.(type) {
			case ImageWhole:
				r.DrawSprite(src.Path, nil, x, y, 0)
			case ImageRegion:
				region := src.Region
				r.DrawSprite(src.Path, &region, x, y, 0)
			case SolidColor:
				r.FillRect(x, y, w, h, colorOrTransparent(src.Color))
			}
		}
	}
}

func colorOrTransparent(c color.Color) color.Color {
	if c == nil {
		return color.Transparent
	}
	return c
}
