package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"tilegrid/internal/graphics"
	"tilegrid/internal/tilemap"

	"github.com/gogpu/gg"
)

// Canvas rasterizes tiles in software with gogpu/gg, for snapshots and tests.
type Canvas struct {
	dc      *gg.Context
	loader  *graphics.ImageLoader
	buffers map[bufferKey]*gg.ImageBuf
	scaleX  float64
	scaleY  float64
	err     error
}

// NewCanvas creates a canvas large enough for width x height grid pixels
// drawn at the given scale.
func NewCanvas(width, height, scaleX, scaleY float64, loader *graphics.ImageLoader) *Canvas {
	w := int(math.Ceil(width * scaleX))
	h := int(math.Ceil(height * scaleY))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(scaleX, scaleY)
	return &Canvas{
		dc:      dc,
		loader:  loader,
		buffers: make(map[bufferKey]*gg.ImageBuf),
		scaleX:  scaleX,
		scaleY:  scaleY,
	}
}

// Clear fills the whole canvas with c.
func (c *Canvas) Clear(col color.Color) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

// bufferKey separates a loaded image from placeholders of different sizes
// substituted for the same missing path.
type bufferKey struct {
	path   string
	loaded bool
	size   image.Point
}

func (c *Canvas) buffer(path string, img image.Image, loaded bool) *gg.ImageBuf {
	key := bufferKey{path: path, loaded: loaded}
	if !loaded {
		key.size = img.Bounds().Size()
	}
	if buf, ok := c.buffers[key]; ok {
		return buf
	}
	buf := gg.ImageBufFromImage(img)
	c.buffers[key] = buf
	return buf
}

func (c *Canvas) DrawSprite(path string, region *tilemap.Region, x, y, rotation float64) {
	opts := gg.DrawImageOptions{
		X:         x,
		Y:         y,
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	}
	img, rect, loaded := c.loader.Sprite(path, region)
	if region != nil {
		opts.SrcRect = &rect
		opts.DstWidth = float64(rect.Dx())
		opts.DstHeight = float64(rect.Dy())
	}
	c.dc.DrawImageEx(c.buffer(path, img, loaded), opts)
}

func (c *Canvas) FillRect(x, y, width, height float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, width, height)
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = fmt.Errorf("fill %vx%v at %v,%v: %w", width, height, x, y, err)
	}
}

func (c *Canvas) RenderScale() (float64, float64) {
	return c.scaleX, c.scaleY
}

// Err returns the first error a fill or flush reported since the canvas was
// created.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns the rendered pixels.
func (c *Canvas) Image() image.Image {
	c.flush()
	return c.dc.Image()
}

func (c *Canvas) flush() {
	if err := c.dc.FlushGPU(); err != nil && c.err == nil {
		c.err = fmt.Errorf("flush: %w", err)
	}
}

// SavePNG writes the rendered pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	c.flush()
	if c.err != nil {
		return c.err
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
