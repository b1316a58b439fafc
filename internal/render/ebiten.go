package render

import (
	"image/color"

	"tilegrid/internal/graphics"
	"tilegrid/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Screen draws tiles onto an ebiten image.
type Screen struct {
	target  *ebiten.Image
	sprites *graphics.SpriteManager
	scaleX  float64
	scaleY  float64
}

// NewScreen creates a renderer using sprites for image lookups and reporting
// the given display scale.
func NewScreen(sprites *graphics.SpriteManager, scaleX, scaleY float64) *Screen {
	return &Screen{
		sprites: sprites,
		scaleX:  scaleX,
		scaleY:  scaleY,
	}
}

// SetTarget selects the image subsequent draw calls render into.
func (s *Screen) SetTarget(target *ebiten.Image) {
	s.target = target
}

func (s *Screen) DrawSprite(path string, region *tilemap.Region, x, y, rotation float64) {
	var img *ebiten.Image
	if region != nil {
		img = s.sprites.GetRegion(path, *region)
	} else {
		img = s.sprites.GetSprite(path)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Rotate(rotation)
	opts.GeoM.Translate(x, y)
	s.target.DrawImage(img, opts)
}

func (s *Screen) FillRect(x, y, width, height float64, c color.Color) {
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(width), float32(height), c, false)
}

// RenderScale returns the scale the offscreen grid image is shown at.
func (s *Screen) RenderScale() (float64, float64) {
	return s.scaleX, s.scaleY
}

// Present draws src onto dst magnified by the display scale.
func (s *Screen) Present(dst, src *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(s.scaleX, s.scaleY)
	dst.DrawImage(src, opts)
}
