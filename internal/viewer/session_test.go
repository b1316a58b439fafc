package viewer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"tilegrid/internal/config"
	"tilegrid/internal/logging"
	"tilegrid/internal/world"
)

const catalogYAML = `
tiles:
  1:
    name: "Grass"
    image: "grass.png"
  2:
    color: [10, 10, 10]
    properties:
      kind: "pit"
  3:
    color: [0, 0, 200]
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"tiles.yaml": {Data: []byte(catalogYAML)},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Assets.Tiles = "tiles.yaml"
	return cfg
}

func TestOpenFS(t *testing.T) {
	var logs bytes.Buffer
	logging.SetupWriter(&logs, "warn")
	defer logging.Setup("info")

	s, err := OpenFS(testConfig(), testFS())
	if err != nil {
		t.Fatalf("OpenFS failed: %v", err)
	}

	if got := s.Levels.Len(); got != len(world.Levels()) {
		t.Errorf("Expected %d built-in levels, got %d", len(world.Levels()), got)
	}
	if s.LevelName() != "meadow" {
		t.Errorf("Expected meadow first, got %s", s.LevelName())
	}
	if s.CellCount() != 100 {
		t.Errorf("Expected 100 meadow cells, got %d", s.CellCount())
	}

	// The meadow uses keys 4 and 5, which this small catalog lacks
	if !strings.Contains(logs.String(), "missing from the catalog") {
		t.Errorf("Expected unknown keys warning, got %q", logs.String())
	}
}

func TestOpenFSMissingCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.Assets.Tiles = "nope.yaml"
	if _, err := OpenFS(cfg, testFS()); err == nil {
		t.Fatal("Expected error for missing catalog")
	}
}

func TestSessionLevelSwitching(t *testing.T) {
	logging.SetupWriter(&bytes.Buffer{}, "error")
	defer logging.Setup("info")

	s, err := OpenFS(testConfig(), testFS())
	if err != nil {
		t.Fatalf("OpenFS failed: %v", err)
	}

	// meadow row 1 is {1, 2, 2, 2, 1, ...}
	if info := s.Grid.TileAtPixel(20, 20, 1, 1); info == nil || info.Properties["kind"] != "pit" {
		t.Errorf("Expected pit at 20,20, got %+v", info)
	}

	names := world.NewLevelManager(world.Levels()...).GetAvailableLevels()
	s.NextLevel()
	if s.LevelName() != names[1] {
		t.Errorf("Expected %s after NextLevel, got %s", names[1], s.LevelName())
	}
	s.PrevLevel()
	s.PrevLevel()
	if s.LevelName() != names[len(names)-1] {
		t.Errorf("Expected wrap to %s, got %s", names[len(names)-1], s.LevelName())
	}

	if err := s.SwitchTo("ruins"); err != nil {
		t.Fatalf("SwitchTo failed: %v", err)
	}
	if s.LevelName() != "ruins" || s.Grid.Rows() != len(s.Grid.Map()) {
		t.Errorf("Expected ruins on the grid, got %s", s.LevelName())
	}
	if err := s.SwitchTo("nowhere"); err == nil {
		t.Error("Expected error for unknown level")
	}
	if s.LevelName() != "ruins" {
		t.Errorf("Expected failed switch to keep ruins, got %s", s.LevelName())
	}
}

func TestPreloadImages(t *testing.T) {
	logging.SetupWriter(&bytes.Buffer{}, "error")
	defer logging.Setup("info")

	s, err := OpenFS(testConfig(), testFS())
	if err != nil {
		t.Fatalf("OpenFS failed: %v", err)
	}
	if failed := s.PreloadImages(); failed != 1 {
		t.Errorf("Expected grass.png to fail, got %d failures", failed)
	}
	if _, ok := s.Images.Failures()["grass.png"]; !ok {
		t.Errorf("Expected grass.png in failures, got %v", s.Images.Failures())
	}
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	if err := os.WriteFile(path, []byte("display:\n  scale: 2\nlogging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvScale, "4")
	t.Setenv(config.EnvLogLevel, "")
	defer logging.Setup("info")

	cfg, err := Bootstrap(path)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if cfg.GetScale() != 4 {
		t.Errorf("Expected env scale 4, got %v", cfg.GetScale())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected debug level from file, got %q", cfg.Logging.Level)
	}

	if _, err := Bootstrap(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestHoverText(t *testing.T) {
	tests := []struct {
		name string
		info *world.TileInfo
		want string
	}{
		{"nil", nil, ""},
		{"named", &world.TileInfo{Key: 1, Name: "Grass"}, "x: 3, y: 4 : Grass"},
		{"unnamed", &world.TileInfo{Key: 2}, "x: 3, y: 4 : tile 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoverText(3, 4, tt.info); got != tt.want {
				t.Errorf("HoverText = %q; want %q", got, tt.want)
			}
		})
	}
}
