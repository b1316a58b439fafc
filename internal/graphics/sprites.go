package graphics

import (
	"image"
	"math"
	"sync"

	"tilegrid/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
)

type regionKey struct {
	path string
	rect image.Rectangle
}

// SpriteManager turns images from an ImageLoader into ebiten images,
// caching whole images and atlas regions by path.
type SpriteManager struct {
	loader  *ImageLoader
	mutex   sync.Mutex
	sprites map[string]*ebiten.Image
	regions map[regionKey]*ebiten.Image
}

func NewSpriteManager(loader *ImageLoader) *SpriteManager {
	return &SpriteManager{
		loader:  loader,
		sprites: make(map[string]*ebiten.Image),
		regions: make(map[regionKey]*ebiten.Image),
	}
}

// GetSprite returns the image at path, or a placeholder if it cannot be loaded.
func (sm *SpriteManager) GetSprite(path string) *ebiten.Image {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	return sm.sprite(path)
}

func (sm *SpriteManager) sprite(path string) *ebiten.Image {
	if sprite, exists := sm.sprites[path]; exists {
		return sprite
	}
	sprite := ebiten.NewImageFromImage(sm.loader.ImageOrPlaceholder(path))
	sm.sprites[path] = sprite
	return sprite
}

// GetRegion returns a sub-image of the image at path. Regions reaching past the
// image edge are clipped to it. A missing image yields a placeholder the size
// of the region.
func (sm *SpriteManager) GetRegion(path string, region tilemap.Region) *ebiten.Image {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	key := regionKey{path: path, rect: RegionRect(region)}
	if sub, exists := sm.regions[key]; exists {
		return sub
	}

	var sub *ebiten.Image
	img, rect, loaded := sm.loader.Sprite(path, &region)
	if loaded {
		sub = sm.sprite(path).SubImage(rect).(*ebiten.Image)
	} else {
		sub = ebiten.NewImageFromImage(img)
	}
	sm.regions[key] = sub
	return sub
}

// RegionRect converts a tile region to integer image bounds.
func RegionRect(region tilemap.Region) image.Rectangle {
	x0 := int(math.Round(region.X))
	y0 := int(math.Round(region.Y))
	x1 := int(math.Round(region.X + region.Width))
	y1 := int(math.Round(region.Y + region.Height))
	return image.Rect(x0, y0, x1, y1)
}
