package render

import (
	"image/color"
	"testing"

	"tilegrid/internal/tilemap"

	"github.com/gdamore/tcell/v2"
)

// cellScreen records SetContent calls. Other tcell.Screen methods are not
// used by Terminal and panic through the nil embedded interface.
type cellScreen struct {
	tcell.Screen
	cells map[[2]int]tcell.Style
}

func newCellScreen() *cellScreen {
	return &cellScreen{cells: make(map[[2]int]tcell.Style)}
}

func (s *cellScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = style
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		name             string
		pos, length      float64
		cell             float64
		wantStart, wantE int
	}{
		{"aligned", 0, 16, 8, 0, 2},
		{"second tile", 16, 16, 8, 2, 4},
		{"partial cells", 4, 8, 8, 0, 2},
		{"inside one cell", 1, 2, 8, 0, 1},
		{"empty", 0, 0, 8, 0, 0},
		{"negative", -8, 16, 8, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := cellSpan(tt.pos, tt.length, tt.cell)
			if start != tt.wantStart || end != tt.wantE {
				t.Errorf("cellSpan(%v, %v, %v) = %d, %d; expected %d, %d",
					tt.pos, tt.length, tt.cell, start, end, tt.wantStart, tt.wantE)
			}
		})
	}
}

func TestTerminalColor(t *testing.T) {
	c, ok := terminalColor(color.RGBA{10, 20, 30, 255})
	if !ok {
		t.Fatal("Expected opaque colour to convert")
	}
	if c != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("Expected rgb(10,20,30), got %v", c)
	}

	if _, ok := terminalColor(color.Transparent); ok {
		t.Error("Expected transparent colour to be skipped")
	}
}

func TestTerminalFillsCells(t *testing.T) {
	screen := newCellScreen()
	term := NewTerminal(screen, testLoader(t), 8, 16)
	term.SetOrigin(2, 1)

	catalog := tilemap.Catalog[int, string]{
		1: {Source: tilemap.SolidColor{Color: color.RGBA{255, 0, 0, 255}}},
		2: {Source: tilemap.ImageWhole{Path: "blue.png"}},
		3: {Source: tilemap.SolidColor{Color: color.Transparent}},
	}
	grid := tilemap.New(catalog, 16, 16)
	grid.SetMap([][]int{{1, 2, 3}})
	grid.Draw(term)

	red := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 0))
	blue := tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 255))

	// Each 16x16 tile covers two 8x16 cells, shifted by the origin.
	want := map[[2]int]tcell.Style{
		{2, 1}: red,
		{3, 1}: red,
		{4, 1}: blue,
		{5, 1}: blue,
	}
	if len(screen.cells) != len(want) {
		t.Fatalf("Expected %d cells, got %d: %v", len(want), len(screen.cells), screen.cells)
	}
	for pos, style := range want {
		if got, ok := screen.cells[pos]; !ok || got != style {
			t.Errorf("Cell %v: expected %v, got %v (set: %v)", pos, style, got, ok)
		}
	}
}

func TestTerminalHoverLookup(t *testing.T) {
	term := NewTerminal(newCellScreen(), testLoader(t), 8, 16)
	term.SetOrigin(2, 1)

	name := "Road"
	catalog := tilemap.Catalog[int, string]{
		1: {Source: tilemap.SolidColor{Color: color.Black}},
		2: {Source: tilemap.SolidColor{Color: color.White}, Description: &name},
	}
	grid := tilemap.New(catalog, 16, 16)
	grid.SetMap([][]int{{1, 2}})

	tests := []struct {
		name         string
		cellX, cellY int
		want         *string
	}{
		{"first tile", 2, 1, nil},
		{"second tile left cell", 4, 1, &name},
		{"second tile right cell", 5, 1, &name},
		{"left of origin", 1, 1, nil},
		{"past last column", 6, 1, nil},
		{"below map", 4, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := term.ViewPosition(tt.cellX, tt.cellY)
			got := grid.TileAt(x, y, term)
			if got != tt.want {
				t.Errorf("Cell %d,%d: expected %v, got %v", tt.cellX, tt.cellY, tt.want, got)
			}
		})
	}
}

func TestTerminalMissingAtlasRegion(t *testing.T) {
	screen := newCellScreen()
	term := NewTerminal(screen, testLoader(t), 8, 16)

	catalog := tilemap.Catalog[int, string]{
		1: {Source: tilemap.ImageRegion{Path: "missing.png", Region: tilemap.Region{X: 16, Y: 16, Width: 16, Height: 16}}},
	}
	grid := tilemap.New(catalog, 16, 16)
	grid.SetMap([][]int{{1}})
	grid.Draw(term)

	grey := tcell.StyleDefault.Background(tcell.NewRGBColor(128, 128, 128))
	for _, pos := range [][2]int{{0, 0}, {1, 0}} {
		if got, ok := screen.cells[pos]; !ok || got != grey {
			t.Errorf("Cell %v: expected grey placeholder, got %v (set: %v)", pos, got, ok)
		}
	}
}
