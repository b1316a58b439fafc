package render

import (
	"image"
	"image/color"
	"math"

	"tilegrid/internal/graphics"
	"tilegrid/internal/tilemap"

	"github.com/gdamore/tcell/v2"
)

// Terminal draws tiles as coloured terminal cells. Each cell covers
// cellWidth x cellHeight grid pixels; sprites are reduced to their average
// colour.
type Terminal struct {
	screen     tcell.Screen
	loader     *graphics.ImageLoader
	cellWidth  float64
	cellHeight float64
	originX    int
	originY    int
	averages   map[regionKey]color.NRGBA
}

type regionKey struct {
	path string
	rect image.Rectangle
}

// NewTerminal creates a terminal renderer. Cell sizes must be positive.
func NewTerminal(screen tcell.Screen, loader *graphics.ImageLoader, cellWidth, cellHeight int) *Terminal {
	return &Terminal{
		screen:     screen,
		loader:     loader,
		cellWidth:  float64(cellWidth),
		cellHeight: float64(cellHeight),
		averages:   make(map[regionKey]color.NRGBA),
	}
}

// SetOrigin moves the grid's top-left corner to terminal cell x, y.
func (t *Terminal) SetOrigin(x, y int) {
	t.originX, t.originY = x, y
}

// RenderScale reports terminal cells per grid pixel, so a terminal position
// converted with ViewPosition can be passed straight to a grid lookup.
func (t *Terminal) RenderScale() (float64, float64) {
	return 1 / t.cellWidth, 1 / t.cellHeight
}

// ViewPosition converts a terminal cell to the position of its centre,
// relative to the grid origin, in cell units.
func (t *Terminal) ViewPosition(cellX, cellY int) (float64, float64) {
	return float64(cellX-t.originX) + 0.5, float64(cellY-t.originY) + 0.5
}

func (t *Terminal) FillRect(x, y, width, height float64, c color.Color) {
	if tc, ok := terminalColor(c); ok {
		t.fill(x, y, width, height, tc)
	}
}

func (t *Terminal) DrawSprite(path string, region *tilemap.Region, x, y, rotation float64) {
	img, rect, _ := t.loader.Sprite(path, region)

	key := regionKey{path: path, rect: rect}
	avg, ok := t.averages[key]
	if !ok {
		avg = graphics.AverageColor(img, rect)
		t.averages[key] = avg
	}

	if tc, ok := terminalColor(avg); ok {
		t.fill(x, y, float64(rect.Dx()), float64(rect.Dy()), tc)
	}
}

func (t *Terminal) fill(x, y, width, height float64, c tcell.Color) {
	style := tcell.StyleDefault.Background(c)
	col0, col1 := cellSpan(x, width, t.cellWidth)
	row0, row1 := cellSpan(y, height, t.cellHeight)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			t.screen.SetContent(t.originX+col, t.originY+row, ' ', nil, style)
		}
	}
}

// cellSpan returns the half-open range of cells of the given size touched by
// [pos, pos+length).
func cellSpan(pos, length, cell float64) (int, int) {
	if length <= 0 {
		return 0, 0
	}
	start := int(math.Floor(pos / cell))
	end := int(math.Ceil((pos + length) / cell))
	return start, end
}

// terminalColor converts c to a true-colour terminal colour. Fully
// transparent colours report false.
func terminalColor(c color.Color) (tcell.Color, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return tcell.ColorDefault, false
	}
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B)), true
}
