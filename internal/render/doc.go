// Package render implements tilemap.Renderer on top of the drawing backends
// used by the tools: an ebiten window, a gogpu/gg software canvas and a tcell
// terminal.
//
// All backends draw at the position they are given; rotation is honoured by
// the ebiten backend only, the others draw axis-aligned.
package render
