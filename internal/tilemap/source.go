package tilemap

import "image/color"

// Region is a sub-rectangle of an image, in source pixels.
type Region struct {
	X, Y          float64
	Width, Height float64
}

// Source describes how a tile is rendered. The set of sources is closed:
// ImageWhole, ImageRegion and SolidColor.
type Source interface {
	isSource()
}

// ImageWhole draws the full image found at Path.
type ImageWhole struct {
	Path string
}

// ImageRegion draws a sub-rectangle of the image found at Path (an atlas entry).
type ImageRegion struct {
	Path   string
	Region Region
}

// SolidColor fills the cell with a flat colour.
type SolidColor struct {
	Color color.Color
}

func (ImageWhole) isSource()  {}
func (ImageRegion) isSource() {}
func (SolidColor) isSource()  {}

// Definition pairs a tile source with an optional user description.
// A nil Description means the tile has nothing to report on lookup.
type Definition[D any] struct {
	Source      Source
	Description *D
}

// Catalog maps tile keys to their definitions.
type Catalog[K comparable, D any] map[K]Definition[D]

// Renderer is the drawing collaborator the grid dispatches to.
type Renderer interface {
	DrawSprite(path string, region *Region, x, y, rotation float64)
	FillRect(x, y, width, height float64, c color.Color)
}

// Scaler reports the display scale applied between grid pixels and screen pixels.
type Scaler interface {
	RenderScale() (scaleX, scaleY float64)
}
