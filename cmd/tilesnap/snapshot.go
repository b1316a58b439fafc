package main

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"tilegrid/internal/render"
	"tilegrid/internal/threading/core"
	"tilegrid/internal/tilemap"
	"tilegrid/internal/viewer"
	"tilegrid/internal/world"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var snapshotBackground = color.RGBA{24, 24, 32, 255}

// snapshotter renders levels of a session to PNG files.
type snapshotter struct {
	tracer  trace.Tracer
	session *viewer.Session
	outDir  string
	scale   float64
}

// selectLevels returns the named level, or every level when name is empty.
func selectLevels(levels *world.LevelManager, name string) ([]world.Level, error) {
	if name != "" {
		level, err := levels.SwitchTo(name)
		if err != nil {
			return nil, err
		}
		return []world.Level{level}, nil
	}

	var all []world.Level
	for range levels.Len() {
		level, _ := levels.Current()
		all = append(all, level)
		levels.Next()
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no levels loaded")
	}
	return all, nil
}

// renderAll renders every level on the pool and waits for all of them.
func (s *snapshotter) renderAll(ctx context.Context, pool *core.WorkerPool, levels []world.Level) error {
	ctx, span := s.tracer.Start(ctx, "snapshot.all",
		trace.WithAttributes(attribute.Int("levels", len(levels))))
	defer span.End()

	for _, level := range levels {
		pool.Submit(ctx, func(ctx context.Context) error {
			path, err := s.render(ctx, level)
			if err != nil {
				log.Error().Err(err).Str("level", level.Name).Msg("snapshot failed")
				return err
			}
			log.Info().Str("level", level.Name).Str("file", path).Msg("snapshot written")
			return nil
		})
	}

	err := pool.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "some snapshots failed")
	}
	return err
}

// render draws one level on its own grid and canvas and writes
// <outDir>/<level>.png.
func (s *snapshotter) render(ctx context.Context, level world.Level) (string, error) {
	_, span := s.tracer.Start(ctx, "snapshot.level",
		trace.WithAttributes(attribute.String("level", level.Name)))
	defer span.End()

	tileWidth, tileHeight := s.session.Grid.TileSize()
	grid := tilemap.New(s.session.Tiles.Catalog(), tileWidth, tileHeight)
	grid.SetMap(level.Tiles)

	width, height := grid.PixelSize()
	canvas := render.NewCanvas(width, height, s.scale, s.scale, s.session.Images)
	defer canvas.Close()
	canvas.Clear(snapshotBackground)

	counter := render.NewCounter(canvas)
	grid.Draw(counter)

	span.SetAttributes(
		attribute.Int("rows", grid.Rows()),
		attribute.Int64("sprites", counter.Sprites()),
		attribute.Int64("fills", counter.Fills()),
	)

	path := filepath.Join(s.outDir, level.Name+".png")
	if err := canvas.SavePNG(path); err != nil {
		err = fmt.Errorf("level %s: %w", level.Name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return "", err
	}
	return path, nil
}
