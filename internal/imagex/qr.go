package imagex

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// QR frame layout.
const (
	qrFrameSize = 500
	qrCodeSize  = 400
)

// ComposeQR places a fetched QR raster on a 500x500 colored plate, scaled
// to 400x400 and centered. The background color comes from the caller so
// branded plates stay consistent with the badge accent.
func ComposeQR(qr image.Image, bg color.NRGBA) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, qrFrameSize, qrFrameSize))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	scaled := imaging.Resize(qr, qrCodeSize, qrCodeSize, imaging.Lanczos)
	offset := (qrFrameSize - qrCodeSize) / 2
	draw.Draw(out, image.Rect(offset, offset, offset+qrCodeSize, offset+qrCodeSize),
		scaled, image.Point{}, draw.Over)

	return out
}
