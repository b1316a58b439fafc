// Command tilesnap renders levels to PNG files without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tilegrid/internal/config"
	"tilegrid/internal/telemetry"
	"tilegrid/internal/threading/core"
	"tilegrid/internal/viewer"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "config file (default $TILEGRID_CONFIG or config.yaml)")
	outDir := flag.String("out", "", "output directory (default snapshot.output_dir)")
	levelName := flag.String("level", "", "render only this level")
	flag.Parse()

	cfg, err := viewer.Bootstrap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilesnap: %v\n", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.Snapshot.OutputDir
	}

	if err := run(cfg, *outDir, *levelName); err != nil {
		log.Error().Err(err).Msg("tilesnap failed")
		os.Exit(1)
	}
}

// run renders the selected levels. Its deferred cleanup flushes pending
// spans, so callers exit only after it returns.
func run(cfg *config.Config, outDir, levelName string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracer, shutdown, err := telemetry.Start(ctx, "tilesnap", "snapshot")
	if err != nil {
		log.Warn().Err(err).Msg("telemetry setup failed, continuing without tracing")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	session, err := viewer.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open tile catalog: %w", err)
	}

	levels, err := selectLevels(session.Levels, levelName)
	if err != nil {
		return fmt.Errorf("nothing to render: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pool := core.NewWorkerPool(cfg.GetSnapshotWorkers())
	pool.Start()
	defer pool.Stop()

	snap := &snapshotter{
		tracer:  tracer,
		session: session,
		outDir:  outDir,
		scale:   cfg.GetScale(),
	}
	err = snap.renderAll(ctx, pool, levels)

	log.Info().
		Int64("written", pool.Completed()).
		Int64("failed", pool.Failed()).
		Str("dir", outDir).
		Msg("snapshots finished")
	if err != nil {
		return fmt.Errorf("some snapshots failed: %w", err)
	}
	return nil
}
