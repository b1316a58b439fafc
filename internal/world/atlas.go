package world

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"tilegrid/internal/tilemap"

	"github.com/unitoftime/packer"
)

// Atlas is a packed spritesheet: one image and named frames inside it.
type Atlas struct {
	Image  string
	Frames map[string]tilemap.Region
}

// LoadAtlas reads a packer spritesheet description. The image path is resolved
// relative to the description's directory; when the description does not name
// an image, the description's own name with a .png extension is used.
func LoadAtlas(fsys fs.FS, name string) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas %s: %w", name, err)
	}

	sheet := packer.SerializedSpritesheet{}
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse atlas %s: %w", name, err)
	}

	imageName := sheet.ImageName
	if imageName == "" {
		imageName = strings.TrimSuffix(path.Base(name), path.Ext(name)) + ".png"
	}

	atlas := &Atlas{
		Image:  path.Join(path.Dir(name), imageName),
		Frames: make(map[string]tilemap.Region, len(sheet.Frames)),
	}
	for key, frame := range sheet.Frames {
		atlas.Frames[key] = tilemap.Region{
			X:      float64(frame.Frame.X),
			Y:      float64(frame.Frame.Y),
			Width:  float64(frame.Frame.W),
			Height: float64(frame.Frame.H),
		}
	}
	return atlas, nil
}

// Frame returns the source for a named frame.
func (a *Atlas) Frame(name string) (tilemap.ImageRegion, bool) {
	region, ok := a.Frames[name]
	if !ok {
		return tilemap.ImageRegion{}, false
	}
	return tilemap.ImageRegion{Path: a.Image, Region: region}, true
}
