package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all viewer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Assets   AssetsConfig   `yaml:"assets"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Terminal TerminalConfig `yaml:"terminal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	WindowTitle  string  `yaml:"window_title"`
	Resizable    bool    `yaml:"resizable"`
	Scale        float64 `yaml:"scale"` // Display magnification applied to the grid
}

type WorldConfig struct {
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
}

type AssetsConfig struct {
	Root  string `yaml:"root"`  // Directory all asset paths are relative to
	Tiles string `yaml:"tiles"` // Tile catalog file, relative to Root
}

type SnapshotConfig struct {
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
}

type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Grid pixels covered by one terminal column
	CellHeight int `yaml:"cell_height"` // Grid pixels covered by one terminal row
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TileConfig is the root of a tile catalog file.
type TileConfig struct {
	Atlases map[string]string `yaml:"atlases,omitempty"` // Atlas name -> packed spritesheet JSON
	Tiles   map[int]TileData  `yaml:"tiles"`
}

// TileData describes one catalog entry. Exactly one of Image, Atlas or Color
// selects how the tile is drawn.
type TileData struct {
	Name       string            `yaml:"name,omitempty"`
	Image      string            `yaml:"image,omitempty"`
	Region     []float64         `yaml:"region,omitempty"` // x, y, width, height inside Image
	Atlas      string            `yaml:"atlas,omitempty"`
	Frame      string            `yaml:"frame,omitempty"`
	Color      []int             `yaml:"color,omitempty"` // r, g, b[, a]
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Default returns the configuration used when no file overrides a value.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  480,
			ScreenHeight: 480,
			WindowTitle:  "Tile Grid Demo",
			Scale:        3,
		},
		World: WorldConfig{
			TileWidth:  16,
			TileHeight: 16,
		},
		Assets: AssetsConfig{
			Root:  ".",
			Tiles: "assets/tiles.yaml",
		},
		Snapshot: SnapshotConfig{
			OutputDir: "snapshots",
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of Default.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values the tools cannot work with.
func (c *Config) Validate() error {
	if c.World.TileWidth < 0 || c.World.TileHeight < 0 {
		return fmt.Errorf("tile size must not be negative: %dx%d", c.World.TileWidth, c.World.TileHeight)
	}
	if c.Display.Scale < 0 {
		return fmt.Errorf("display scale must not be negative: %v", c.Display.Scale)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive: %dx%d", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetScale returns the display scale, treating an unset value as 1.
func (c *Config) GetScale() float64 {
	if c.Display.Scale == 0 {
		return 1
	}
	return c.Display.Scale
}

func (c *Config) GetTileSize() (width, height int) {
	return c.World.TileWidth, c.World.TileHeight
}

func (c *Config) GetTilesPath() string {
	return c.Assets.Tiles
}

func (c *Config) GetSnapshotWorkers() int {
	return c.Snapshot.Workers
}
