// Package viewer wires configuration, the tile catalog and the levels into a
// grid shared by the tools.
package viewer

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"tilegrid/internal/config"
	"tilegrid/internal/graphics"
	"tilegrid/internal/logging"
	"tilegrid/internal/threading/core"
	"tilegrid/internal/tilemap"
	"tilegrid/internal/world"

	"github.com/rs/zerolog/log"
)

// DefaultConfigPath is used when TILEGRID_CONFIG is not set.
const DefaultConfigPath = "config.yaml"

// Session is a loaded catalog with the grid showing the current level.
type Session struct {
	Config *config.Config
	Tiles  *world.TileManager
	Images *graphics.ImageLoader
	Levels *world.LevelManager
	Grid   *tilemap.Grid[int, world.TileInfo]
}

// Bootstrap loads .env, the configuration file and environment overrides,
// then installs the logger at the configured level.
func Bootstrap(configPath string) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = config.ConfigPath(DefaultConfigPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level)
	log.Debug().Str("config", configPath).Msg("configuration loaded")
	return cfg, nil
}

// Open loads the session from the asset root named in cfg.
func Open(cfg *config.Config) (*Session, error) {
	return OpenFS(cfg, os.DirFS(cfg.Assets.Root))
}

// OpenFS loads the catalog from root and shows the first built-in level.
func OpenFS(cfg *config.Config, root fs.FS) (*Session, error) {
	tiles := world.NewTileManager(root)
	if err := tiles.LoadTileConfig(cfg.GetTilesPath()); err != nil {
		return nil, fmt.Errorf("failed to load tile catalog: %w", err)
	}

	images := graphics.NewImageLoader(root)
	images.OnMissing(func(path string, err error) {
		log.Warn().Err(err).Str("path", path).Msg("image unavailable, drawing placeholder")
	})

	levels := world.NewLevelManager(world.Levels()...)

	tileWidth, tileHeight := cfg.GetTileSize()
	s := &Session{
		Config: cfg,
		Tiles:  tiles,
		Images: images,
		Levels: levels,
		Grid:   tilemap.New(tiles.Catalog(), tileWidth, tileHeight),
	}

	log.Info().
		Int("tiles", len(tiles.Catalog())).
		Strs("levels", levels.GetAvailableLevels()).
		Msg("tile catalog loaded")

	if level, ok := levels.Current(); ok {
		s.show(level)
	}
	return s, nil
}

// PreloadImages decodes every image the catalog refers to so missing files
// are reported up front. It returns the number of images that failed.
func (s *Session) PreloadImages() int {
	errs := core.ParallelMap(context.Background(), s.Tiles.ImagePaths(), func(path string) error {
		_, err := s.Images.Image(path)
		return err
	})

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	return failed
}

// LevelName returns the name of the level on the grid.
func (s *Session) LevelName() string {
	level, _ := s.Levels.Current()
	return level.Name
}

// NextLevel shows the following level.
func (s *Session) NextLevel() {
	if level, ok := s.Levels.Next(); ok {
		s.show(level)
	}
}

// PrevLevel shows the preceding level.
func (s *Session) PrevLevel() {
	if level, ok := s.Levels.Prev(); ok {
		s.show(level)
	}
}

// SwitchTo shows the named level.
func (s *Session) SwitchTo(name string) error {
	level, err := s.Levels.SwitchTo(name)
	if err != nil {
		return err
	}
	s.show(level)
	return nil
}

func (s *Session) show(level world.Level) {
	s.Grid.SetMap(level.Tiles)
	if unknown := world.UnknownKeys(level.Tiles, s.Tiles.Catalog()); unknown.Size() > 0 {
		log.Warn().
			Str("level", level.Name).
			Ints("keys", world.SortedKeys(unknown)).
			Msg("level uses keys missing from the catalog; those cells stay empty")
	}
	log.Debug().Str("level", level.Name).Int("rows", s.Grid.Rows()).Msg("level shown")
}

// CellCount returns the number of cells in the current layout.
func (s *Session) CellCount() int {
	n := 0
	for _, row := range s.Grid.Map() {
		n += len(row)
	}
	return n
}

// HoverText formats the status line for the tile under the pointer. It
// returns "" when nothing there has a description.
func HoverText(x, y int, info *world.TileInfo) string {
	if info == nil {
		return ""
	}
	name := info.Name
	if name == "" {
		name = fmt.Sprintf("tile %d", info.Key)
	}
	return fmt.Sprintf("x: %d, y: %d : %s", x, y, name)
}
