package main

import (
	"fmt"
	"os"

	"tilegrid/internal/logging"
	"tilegrid/internal/render"
	"tilegrid/internal/viewer"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

// gridTop is the first terminal row used by the grid; row 0 is the title.
const gridTop = 1

// view draws the session's grid and a status line into a tcell screen.
type view struct {
	screen   tcell.Screen
	session  *viewer.Session
	terminal *render.Terminal
	hover    string
	running  bool
}

func newView(screen tcell.Screen, session *viewer.Session) *view {
	cfg := session.Config
	terminal := render.NewTerminal(screen, session.Images, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	terminal.SetOrigin(0, gridTop)
	return &view{
		screen:   screen,
		session:  session,
		terminal: terminal,
		running:  true,
	}
}

func (v *view) run() {
	for v.running {
		v.draw()
		v.handle(v.screen.PollEvent())
	}
}

func (v *view) draw() {
	v.screen.Clear()
	v.session.Grid.Draw(v.terminal)

	_, height := v.screen.Size()
	title := fmt.Sprintf("%s  (←/→ level, q quit)", v.session.LevelName())
	v.print(0, 0, title, tcell.StyleDefault.Bold(true))
	v.print(0, height-1, v.hover, tcell.StyleDefault)
	v.screen.Show()
}

func (v *view) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *view) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.hoverAt(x, y)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized
		v.running = false
	}
}

func (v *view) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyRight:
		v.session.NextLevel()
		v.hover = ""
	case tcell.KeyLeft:
		v.session.PrevLevel()
		v.hover = ""
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		}
	}
}

// hoverAt updates the status line for the terminal cell under the mouse.
func (v *view) hoverAt(cellX, cellY int) {
	x, y := v.terminal.ViewPosition(cellX, cellY)
	info := v.session.Grid.TileAt(x, y, v.terminal)

	// Report grid pixels, matching the graphical demo.
	sx, sy := v.terminal.RenderScale()
	v.hover = viewer.HoverText(int(x/sx), int(y/sy), info)
}

// redirectLog sends the logger to a file so it does not draw over the grid.
func redirectLog(path, level string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.SetupWriter(f, level)
	return func() {
		logging.Setup(level)
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close log file")
		}
	}, nil
}
