package imagex

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Ring crops img to a centered circle and strokes a colored ring around it.
// The output is a square RGBA image of the source's shorter side; pixels
// outside the circle are transparent.
func Ring(img image.Image, ringColor color.NRGBA, ringWidth int) image.Image {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}

	square := imaging.Fill(img, side, side, imaging.Center, imaging.Lanczos)
	out := image.NewNRGBA(image.Rect(0, 0, side, side))

	cx := float64(side) / 2
	cy := float64(side) / 2
	outer := float64(side) / 2
	inner := outer - float64(ringWidth)
	if inner < 0 {
		inner = 0
	}

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := dx*dx + dy*dy

			switch {
			case d > outer*outer:
				// outside the circle, transparent
			case d > inner*inner:
				out.SetNRGBA(x, y, ringColor)
			default:
				out.Set(x, y, square.At(x, y))
			}
		}
	}

	return out
}
