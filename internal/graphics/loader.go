package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"sync"

	"tilegrid/internal/tilemap"
)

// PlaceholderSize is the edge length of images substituted for missing files.
const PlaceholderSize = 16

// PlaceholderColor fills images substituted for missing files.
var PlaceholderColor = color.RGBA{128, 128, 128, 255}

// ImageLoader decodes images by path from a file system and caches them.
// It is safe for concurrent use; different paths decode in parallel.
type ImageLoader struct {
	fsys      fs.FS
	mutex     sync.Mutex
	entries   map[string]*imageEntry
	failed    map[string]error
	onMissing func(path string, err error)
}

// imageEntry holds the result of decoding one path. once guards img and err.
type imageEntry struct {
	once sync.Once
	img  image.Image
	err  error
}

// NewImageLoader creates a loader reading from fsys.
func NewImageLoader(fsys fs.FS) *ImageLoader {
	return &ImageLoader{
		fsys:    fsys,
		entries: make(map[string]*imageEntry),
		failed:  make(map[string]error),
	}
}

// OnMissing registers a callback invoked once per path that fails to load.
func (l *ImageLoader) OnMissing(fn func(path string, err error)) {
	l.mutex.Lock()
	l.onMissing = fn
	l.mutex.Unlock()
}

// Image returns the decoded image at path.
func (l *ImageLoader) Image(path string) (image.Image, error) {
	l.mutex.Lock()
	entry, ok := l.entries[path]
	if !ok {
		entry = &imageEntry{}
		l.entries[path] = entry
	}
	l.mutex.Unlock()

	entry.once.Do(func() {
		entry.img, entry.err = decode(l.fsys, path)
		if entry.err == nil {
			return
		}
		l.mutex.Lock()
		l.failed[path] = entry.err
		onMissing := l.onMissing
		l.mutex.Unlock()
		if onMissing != nil {
			onMissing(path, entry.err)
		}
	})
	return entry.img, entry.err
}

// ImageOrPlaceholder returns the image at path, or a grey placeholder when
// it cannot be loaded.
func (l *ImageLoader) ImageOrPlaceholder(path string) image.Image {
	img, err := l.Image(path)
	if err != nil {
		return Placeholder()
	}
	return img
}

// Sprite returns the image a sprite is cut from and the bounds to cut. A nil
// region selects the whole image. When the image cannot be loaded, the
// result is a placeholder as large as the region, with loaded set to false,
// so missing atlas tiles still cover their cell.
func (l *ImageLoader) Sprite(path string, region *tilemap.Region) (img image.Image, rect image.Rectangle, loaded bool) {
	img, err := l.Image(path)
	if err == nil {
		if region == nil {
			return img, img.Bounds(), true
		}
		return img, RegionRect(*region), true
	}

	if region == nil {
		img = Placeholder()
	} else {
		r := RegionRect(*region)
		img = PlaceholderSized(r.Dx(), r.Dy())
	}
	return img, img.Bounds(), false
}

// Failures returns the paths that could not be loaded so far.
func (l *ImageLoader) Failures() map[string]error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	result := make(map[string]error, len(l.failed))
	for path, err := range l.failed {
		result[path] = err
	}
	return result
}

func decode(fsys fs.FS, path string) (image.Image, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Placeholder returns a new solid grey image of PlaceholderSize.
func Placeholder() image.Image {
	return PlaceholderSized(PlaceholderSize, PlaceholderSize)
}

// PlaceholderSized returns a new solid grey image of width x height, at
// least one pixel on each side.
func PlaceholderSized(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor), image.Point{}, draw.Src)
	return img
}
