package main

import (
	"fmt"
	"image/color"
	"os"

	"tilegrid/internal/graphics"
	"tilegrid/internal/render"
	"tilegrid/internal/threading/monitoring"
	"tilegrid/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	hudColor        = color.Black
	hudShadow       = color.RGBA{255, 255, 255, 160}
)

// demo shows one level at a time and names the tile under the cursor.
type demo struct {
	session *viewer.Session
	screen  *render.Screen
	counter *render.Counter
	monitor *monitoring.PerformanceMonitor

	offscreen *ebiten.Image
	showStats bool
	width     int
	height    int
}

func newDemo(session *viewer.Session) *demo {
	cfg := session.Config
	scale := cfg.GetScale()
	screen := render.NewScreen(graphics.NewSpriteManager(session.Images), scale, scale)

	d := &demo{
		session: session,
		screen:  screen,
		counter: render.NewCounter(screen),
		monitor: monitoring.NewPerformanceMonitor(),
		width:   cfg.GetScreenWidth(),
		height:  cfg.GetScreenHeight(),
	}
	d.resize()
	return d
}

// resize fits the offscreen image to the current level.
func (d *demo) resize() {
	w, h := d.session.Grid.PixelSize()
	iw, ih := max(int(w), 1), max(int(h), 1)
	if d.offscreen != nil {
		if b := d.offscreen.Bounds(); b.Dx() == iw && b.Dy() == ih {
			return
		}
		d.offscreen.Deallocate()
	}
	d.offscreen = ebiten.NewImage(iw, ih)
	d.monitor.SetTileCount(d.session.CellCount())
}

func (d *demo) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		d.session.NextLevel()
		d.resize()
		log.Info().Str("level", d.session.LevelName()).Msg("level switched")
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		d.session.PrevLevel()
		d.resize()
		log.Info().Str("level", d.session.LevelName()).Msg("level switched")
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		d.showStats = !d.showStats
		if d.showStats {
			d.monitor.Reset()
			d.monitor.SetTileCount(d.session.CellCount())
		}
	}
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	timer := d.monitor.StartFrame()
	defer timer.EndFrame()

	screen.Fill(backgroundColor)

	d.offscreen.Clear()
	d.counter.Reset()
	d.screen.SetTarget(d.offscreen)
	d.session.Grid.Draw(d.counter)
	d.screen.Present(screen, d.offscreen)
	d.monitor.RecordDraws(d.counter.Sprites(), d.counter.Fills())

	mx, my := ebiten.CursorPosition()
	if text := viewer.HoverText(mx, my, d.session.Grid.TileAt(float64(mx), float64(my), d.screen)); text != "" {
		drawHUDText(screen, text, 10, 10)
	}

	if d.showStats {
		d.drawStats(screen)
	}
}

func drawHUDText(screen *ebiten.Image, s string, x, y int) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	ebitext.Draw(screen, s, face, x+1, baseline+1, hudShadow)
	ebitext.Draw(screen, s, face, x, baseline, hudColor)
}

func (d *demo) drawStats(screen *ebiten.Image) {
	m := d.monitor.GetCurrentMetrics()
	lines := []string{
		fmt.Sprintf("level: %s", d.session.LevelName()),
		fmt.Sprintf("fps: %.1f (tps %.1f)", m.FramesPerSecond, ebiten.ActualTPS()),
		fmt.Sprintf("frame: %v (last %v)", m.AvgFrameTime, m.LastFrameTime),
		fmt.Sprintf("cells: %d  sprites: %d  fills: %d", m.Tiles, m.Sprites, m.Fills),
		fmt.Sprintf("mem: %d MB", m.MemoryUsageMB),
	}
	for _, alert := range d.monitor.CheckPerformanceAlerts() {
		lines = append(lines, fmt.Sprintf("! %s %.1f < %.0f", alert.Type, alert.Value, alert.Threshold))
	}

	y := d.height - 16*len(lines) - 4
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*16)
	}
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.width, d.height
}

func main() {
	cfg, err := viewer.Bootstrap("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
		os.Exit(1)
	}

	session, err := viewer.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open tile catalog")
	}
	if failed := session.PreloadImages(); failed > 0 {
		log.Warn().Int("images", failed).Msg("some tile images are missing")
	}

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(newDemo(session)); err != nil {
		log.Fatal().Err(err).Msg("demo stopped")
	}
}
