package render

import (
	"image/color"

	"tilegrid/internal/threading/core"
	"tilegrid/internal/tilemap"
)

// Counter forwards draw calls to another renderer and counts them.
// Counts may be read from other goroutines.
type Counter struct {
	next    tilemap.Renderer
	sprites *core.SafeCounter
	fills   *core.SafeCounter
}

// NewCounter wraps next.
func NewCounter(next tilemap.Renderer) *Counter {
	return &Counter{
		next:    next,
		sprites: core.NewSafeCounter(),
		fills:   core.NewSafeCounter(),
	}
}

func (c *Counter) DrawSprite(path string, region *tilemap.Region, x, y, rotation float64) {
	c.sprites.Increment()
	c.next.DrawSprite(path, region, x, y, rotation)
}

func (c *Counter) FillRect(x, y, width, height float64, col color.Color) {
	c.fills.Increment()
	c.next.FillRect(x, y, width, height, col)
}

// RenderScale forwards to the wrapped renderer when it reports a scale.
func (c *Counter) RenderScale() (float64, float64) {
	if s, ok := c.next.(tilemap.Scaler); ok {
		return s.RenderScale()
	}
	return 1, 1
}

// Sprites returns the number of sprite blits so far.
func (c *Counter) Sprites() int64 {
	return c.sprites.Get()
}

// Fills returns the number of rectangle fills so far.
func (c *Counter) Fills() int64 {
	return c.fills.Get()
}

// Total returns all draw calls so far.
func (c *Counter) Total() int64 {
	return c.Sprites() + c.Fills()
}

// Reset zeroes both counts.
func (c *Counter) Reset() {
	c.sprites.Set(0)
	c.fills.Set(0)
}
