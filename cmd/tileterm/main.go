// Command tileterm shows levels in the terminal. Hovering the mouse over a
// tile names it on the status line.
package main

import (
	"flag"
	"fmt"
	"os"

	"tilegrid/internal/viewer"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "config file (default $TILEGRID_CONFIG or config.yaml)")
	logFile := flag.String("log", "tileterm.log", "log file; the terminal is used for drawing")
	flag.Parse()

	cfg, err := viewer.Bootstrap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := redirectLog(*logFile, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	session, err := viewer.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}
	session.PreloadImages()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.Clear()

	v := newView(screen, session)
	v.run()
	screen.Fini()
	log.Info().Msg("tileterm closed")
}
