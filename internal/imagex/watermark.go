package imagex

import (
	"image"
	"image/color"
	"image/draw"
)

// WatermarkParams controls text watermark placement and appearance.
// Opacity is 0..1, Size is the font size in pixels, Color is the ink.
type WatermarkParams struct {
	Text    string
	Opacity float64
	Size    float64
	Color   color.NRGBA
}

// Watermark stamps params.Text into the bottom-right corner of img with a
// small drop shadow. Padding from the edges is 3% of the image width. The
// same inputs always produce the same output.
func Watermark(img image.Image, params WatermarkParams) (image.Image, error) {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	if params.Text == "" {
		return out, nil
	}

	size := params.Size
	if size <= 0 {
		size = float64(b.Dx()) / 25
	}

	opacity := params.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.7
	}

	ink := params.Color
	ink.A = uint8(float64(ink.A) * opacity)
	shadow := color.NRGBA{A: uint8(160 * opacity)}

	w, err := measureText(params.Text, weightBold, size)
	if err != nil {
		return nil, err
	}

	pad := b.Dx() * 3 / 100
	x := b.Dx() - w - pad
	y := b.Dy() - pad

	if err := drawText(out, params.Text, x+2, y+2, shadow, weightBold, size); err != nil {
		return nil, err
	}
	if err := drawText(out, params.Text, x, y, ink, weightBold, size); err != nil {
		return nil, err
	}

	return out, nil
}
