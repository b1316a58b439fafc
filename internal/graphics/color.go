package graphics

import (
	"image"
	"image/color"
)

// AverageColor returns the mean non-premultiplied colour of img inside rect.
// Fully transparent pixels do not contribute; an empty area yields transparent.
func AverageColor(img image.Image, rect image.Rectangle) color.NRGBA {
	rect = rect.Intersect(img.Bounds())

	var r, g, b, a, n uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			r += uint64(px.R)
			g += uint64(px.G)
			b += uint64(px.B)
			a += uint64(px.A)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{uint8(r / n), uint8(g / n), uint8(b / n), uint8(a / n)}
}
