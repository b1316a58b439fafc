package world

import (
	"image/color"
	"os"
	"testing"
	"testing/fstest"

	"tilegrid/internal/tilemap"
)

const testAtlas = `{
  "ImageName": "sheet.png",
  "Frames": {
    "wall": {"frame": {"x": 32, "y": 0, "w": 16, "h": 8}}
  }
}`

const testConfig = `atlases:
  dungeon: atlas/sheet.json
tiles:
  1:
    name: "Test Wall"
    image: "img/wall.png"
    properties:
      solid: "true"
  2:
    name: "Corner"
    image: "img/set.png"
    region: [16, 0, 16, 16]
  3:
    name: "Atlas Wall"
    atlas: dungeon
    frame: wall
  4:
    color: [10, 20, 30]
  5:
    color: [10, 20, 30, 128]
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/tiles.yaml":       {Data: []byte(testConfig)},
		"data/atlas/sheet.json": {Data: []byte(testAtlas)},
	}
}

func TestTileManager(t *testing.T) {
	tm := NewTileManager(testFS())
	if err := tm.LoadTileConfig("data/tiles.yaml"); err != nil {
		t.Fatalf("Failed to load tile config: %v", err)
	}

	catalog := tm.Catalog()
	if len(catalog) != 5 {
		t.Fatalf("Expected 5 tiles, got %d", len(catalog))
	}

	t.Run("Whole Image", func(t *testing.T) {
		src, ok := catalog[1].Source.(tilemap.ImageWhole)
		if !ok {
			t.Fatalf("Expected ImageWhole for tile 1, got %T", catalog[1].Source)
		}
		if src.Path != "data/img/wall.png" {
			t.Errorf("Expected path relative to the catalog, got %q", src.Path)
		}
		info := tm.GetTileInfo(1)
		if info == nil || info.Name != "Test Wall" || info.Key != 1 {
			t.Fatalf("Unexpected info for tile 1: %+v", info)
		}
		if info.Properties["solid"] != "true" {
			t.Errorf("Expected solid property, got %v", info.Properties)
		}
	})

	t.Run("Image Region", func(t *testing.T) {
		src, ok := catalog[2].Source.(tilemap.ImageRegion)
		if !ok {
			t.Fatalf("Expected ImageRegion for tile 2, got %T", catalog[2].Source)
		}
		want := tilemap.Region{X: 16, Y: 0, Width: 16, Height: 16}
		if src.Path != "data/img/set.png" || src.Region != want {
			t.Errorf("Unexpected region source %+v", src)
		}
	})

	t.Run("Atlas Frame", func(t *testing.T) {
		src, ok := catalog[3].Source.(tilemap.ImageRegion)
		if !ok {
			t.Fatalf("Expected ImageRegion for tile 3, got %T", catalog[3].Source)
		}
		want := tilemap.Region{X: 32, Y: 0, Width: 16, Height: 8}
		if src.Path != "data/atlas/sheet.png" || src.Region != want {
			t.Errorf("Unexpected atlas source %+v", src)
		}
		if _, ok := tm.GetAtlas("dungeon"); !ok {
			t.Errorf("Expected atlas dungeon to be loaded")
		}
	})

	t.Run("Solid Colors", func(t *testing.T) {
		src, ok := catalog[4].Source.(tilemap.SolidColor)
		if !ok {
			t.Fatalf("Expected SolidColor for tile 4, got %T", catalog[4].Source)
		}
		if src.Color != (color.NRGBA{10, 20, 30, 255}) {
			t.Errorf("Unexpected colour %v", src.Color)
		}
		if catalog[5].Source.(tilemap.SolidColor).Color != (color.NRGBA{10, 20, 30, 128}) {
			t.Errorf("Expected alpha component to be kept")
		}
		if tm.GetTileInfo(4) != nil {
			t.Errorf("Expected tile without name or properties to have no description")
		}
	})

	keys := tm.GetAllTileKeys()
	if len(keys) != 5 || keys[0] != 1 || keys[4] != 5 {
		t.Errorf("Expected sorted keys 1..5, got %v", keys)
	}
	if !tm.HasTileKey(3) || tm.HasTileKey(42) {
		t.Errorf("HasTileKey gave wrong answers")
	}

	paths := tm.ImagePaths()
	wantPaths := []string{"data/atlas/sheet.png", "data/img/set.png", "data/img/wall.png"}
	if len(paths) != len(wantPaths) {
		t.Fatalf("Expected image paths %v, got %v", wantPaths, paths)
	}
	for i := range wantPaths {
		if paths[i] != wantPaths[i] {
			t.Errorf("Expected image paths %v, got %v", wantPaths, paths)
			break
		}
	}
}

func TestTileManagerErrors(t *testing.T) {
	cases := []struct {
		name   string
		config string
	}{
		{"no source", "tiles:\n  1:\n    name: x\n"},
		{"two sources", "tiles:\n  1:\n    image: a.png\n    color: [1, 2, 3]\n"},
		{"short region", "tiles:\n  1:\n    image: a.png\n    region: [0, 0, 16]\n"},
		{"region without image", "atlases:\n  a: atlas/sheet.json\ntiles:\n  1:\n    atlas: a\n    frame: wall\n    region: [0, 0, 1, 1]\n"},
		{"unknown atlas", "tiles:\n  1:\n    atlas: nope\n    frame: wall\n"},
		{"unknown frame", "atlases:\n  a: atlas/sheet.json\ntiles:\n  1:\n    atlas: a\n    frame: nope\n"},
		{"missing atlas file", "atlases:\n  a: atlas/none.json\ntiles: {}\n"},
		{"bad color", "tiles:\n  1:\n    color: [1, 2]\n"},
		{"color out of range", "tiles:\n  1:\n    color: [1, 2, 300]\n"},
		{"malformed yaml", "tiles: [\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := testFS()
			fsys["data/bad.yaml"] = &fstest.MapFile{Data: []byte(tc.config)}

			tm := NewTileManager(fsys)
			if err := tm.LoadTileConfig("data/tiles.yaml"); err != nil {
				t.Fatalf("Failed to load valid config: %v", err)
			}
			if err := tm.LoadTileConfig("data/bad.yaml"); err == nil {
				t.Fatalf("Expected error for %s", tc.name)
			}
			// The previous catalog survives a failed load
			if len(tm.Catalog()) != 5 {
				t.Errorf("Expected previous catalog to be kept, got %d tiles", len(tm.Catalog()))
			}
		})
	}

	tm := NewTileManager(testFS())
	if err := tm.LoadTileConfig("data/missing.yaml"); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestLoadAtlasDefaultsImageName(t *testing.T) {
	fsys := fstest.MapFS{
		"sheets/props.json": {Data: []byte(`{"Frames": {"barrel": {"frame": {"x": 1, "y": 2, "w": 3, "h": 4}}}}`)},
		"sheets/bad.json":   {Data: []byte(`{"Frames": `)},
	}

	atlas, err := LoadAtlas(fsys, "sheets/props.json")
	if err != nil {
		t.Fatalf("Failed to load atlas: %v", err)
	}
	if atlas.Image != "sheets/props.png" {
		t.Errorf("Expected image named after the atlas, got %q", atlas.Image)
	}
	src, ok := atlas.Frame("barrel")
	if !ok || src.Region != (tilemap.Region{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("Unexpected frame %+v (ok=%v)", src, ok)
	}
	if _, ok := atlas.Frame("crate"); ok {
		t.Errorf("Expected missing frame to fail")
	}

	if _, err := LoadAtlas(fsys, "sheets/bad.json"); err == nil {
		t.Errorf("Expected parse error for truncated atlas")
	}
}

func TestShippedCatalog(t *testing.T) {
	tm := NewTileManager(os.DirFS("../.."))
	if err := tm.LoadTileConfig("assets/tiles.yaml"); err != nil {
		t.Fatalf("Failed to load shipped tile config: %v", err)
	}

	for _, level := range Levels() {
		if unknown := UnknownKeys(level.Tiles, tm.Catalog()); unknown.Size() != 0 {
			t.Errorf("Level %s uses keys missing from the catalog: %v", level.Name, SortedKeys(unknown))
		}
	}

	for _, p := range tm.ImagePaths() {
		if _, err := os.Stat("../../" + p); err != nil {
			t.Errorf("Catalog image %s is missing: %v", p, err)
		}
	}
}
