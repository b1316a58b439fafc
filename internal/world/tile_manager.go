package world

import (
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"

	"tilegrid/internal/config"
	"tilegrid/internal/tilemap"

	"gopkg.in/yaml.v3"
)

// TileInfo is the description attached to catalog entries.
type TileInfo struct {
	Key        int
	Name       string
	Properties map[string]string
}

// Catalog is the tile catalog used by the tools.
type Catalog = tilemap.Catalog[int, TileInfo]

// TileManager loads the tile catalog and the atlases it refers to
type TileManager struct {
	fsys    fs.FS
	atlases map[string]*Atlas
	catalog Catalog
}

// NewTileManager creates a tile manager reading files from fsys
func NewTileManager(fsys fs.FS) *TileManager {
	return &TileManager{
		fsys:    fsys,
		atlases: make(map[string]*Atlas),
		catalog: make(Catalog),
	}
}

// LoadTileConfig loads the catalog from a YAML file. Image and atlas paths in
// the file are relative to its directory. On error the previously loaded
// catalog is kept.
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := fs.ReadFile(tm.fsys, filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	// Atlas paths are relative to the catalog file
	atlases := make(map[string]*Atlas, len(tileConfig.Atlases))
	for name, file := range tileConfig.Atlases {
		atlas, err := LoadAtlas(tm.fsys, path.Join(path.Dir(filename), file))
		if err != nil {
			return fmt.Errorf("atlas %q: %w", name, err)
		}
		atlases[name] = atlas
	}

	catalog := make(Catalog, len(tileConfig.Tiles))
	for key, data := range tileConfig.Tiles {
		def, err := buildDefinition(key, data, path.Dir(filename), atlases)
		if err != nil {
			return err
		}
		catalog[key] = def
	}

	tm.atlases = atlases
	tm.catalog = catalog
	return nil
}

// buildDefinition turns one catalog entry into a tile definition. Image paths
// are resolved against dir.
func buildDefinition(key int, data config.TileData, dir string, atlases map[string]*Atlas) (tilemap.Definition[TileInfo], error) {
	var def tilemap.Definition[TileInfo]

	sources := 0
	for _, set := range []bool{data.Image != "", data.Atlas != "", len(data.Color) > 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return def, fmt.Errorf("tile %d: exactly one of image, atlas or color is required", key)
	}

	switch {
	case data.Image != "":
		file := path.Join(dir, data.Image)
		switch len(data.Region) {
		case 0:
			def.Source = tilemap.ImageWhole{Path: file}
		case 4:
			def.Source = tilemap.ImageRegion{
				Path: file,
				Region: tilemap.Region{
					X: data.Region[0], Y: data.Region[1],
					Width: data.Region[2], Height: data.Region[3],
				},
			}
		default:
			return def, fmt.Errorf("tile %d: region needs 4 values (x, y, width, height), got %d", key, len(data.Region))
		}
	case data.Atlas != "":
		atlas, ok := atlases[data.Atlas]
		if !ok {
			return def, fmt.Errorf("tile %d: unknown atlas %q", key, data.Atlas)
		}
		src, ok := atlas.Frame(data.Frame)
		if !ok {
			return def, fmt.Errorf("tile %d: atlas %q has no frame %q", key, data.Atlas, data.Frame)
		}
		def.Source = src
	default:
		c, err := parseColor(data.Color)
		if err != nil {
			return def, fmt.Errorf("tile %d: %w", key, err)
		}
		def.Source = tilemap.SolidColor{Color: c}
	}

	if data.Region != nil && data.Image == "" {
		return def, fmt.Errorf("tile %d: region is only valid with image", key)
	}

	if data.Name != "" || len(data.Properties) > 0 {
		def.Description = &TileInfo{Key: key, Name: data.Name, Properties: data.Properties}
	}
	return def, nil
}

func parseColor(values []int) (color.NRGBA, error) {
	if len(values) != 3 && len(values) != 4 {
		return color.NRGBA{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(values))
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("color component %d out of range 0-255", v)
		}
	}
	c := color.NRGBA{R: uint8(values[0]), G: uint8(values[1]), B: uint8(values[2]), A: 255}
	if len(values) == 4 {
		c.A = uint8(values[3])
	}
	return c, nil
}

// Catalog returns the loaded catalog. Callers must not modify it.
func (tm *TileManager) Catalog() Catalog {
	return tm.catalog
}

// GetTileInfo returns the description for a key, or nil
func (tm *TileManager) GetTileInfo(key int) *TileInfo {
	return tm.catalog[key].Description
}

// HasTileKey checks if a tile key exists in the loaded catalog
func (tm *TileManager) HasTileKey(key int) bool {
	_, exists := tm.catalog[key]
	return exists
}

// GetAllTileKeys returns the catalog keys in ascending order
func (tm *TileManager) GetAllTileKeys() []int {
	keys := make([]int, 0, len(tm.catalog))
	for key := range tm.catalog {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// GetAtlas returns a loaded atlas by name
func (tm *TileManager) GetAtlas(name string) (*Atlas, bool) {
	atlas, ok := tm.atlases[name]
	return atlas, ok
}

// ImagePaths returns every image referenced by the catalog, sorted.
func (tm *TileManager) ImagePaths() []string {
	seen := make(map[string]bool)
	for _, def := range tm.catalog {
		switch src := def.Source.(type) {
		case tilemap.ImageWhole:
			seen[src.Path] = true
		case tilemap.ImageRegion:
			seen[src.Path] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
