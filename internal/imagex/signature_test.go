package imagex

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignaturePadStroke(t *testing.T) {
	ink := color.NRGBA{R: 10, G: 10, B: 120, A: 255}
	pad := NewSignaturePad(ink, 4)

	pad.Begin(100, 200)
	pad.LineTo(300, 200)
	pad.End()

	img := pad.Image()
	assert.Equal(t, signatureWidth, img.Bounds().Dx())
	assert.Equal(t, signatureHeight, img.Bounds().Dy())

	// a point on the stroke carries ink
	r, g, b, _ := img.At(200, 200).RGBA()
	assert.Equal(t, uint32(ink.R)*0x101, r)
	assert.Equal(t, uint32(ink.G)*0x101, g)
	assert.Equal(t, uint32(ink.B)*0x101, b)

	// far away stays white
	r, _, _, _ = img.At(700, 50).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestSignaturePadLineToBeforeBeginIgnored(t *testing.T) {
	pad := NewSignaturePad(color.NRGBA{A: 255}, 4)
	pad.LineTo(100, 100)

	r, _, _, _ := pad.Image().At(100, 100).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestSignaturePadClear(t *testing.T) {
	pad := NewSignaturePad(color.NRGBA{A: 255}, 6)
	pad.Begin(50, 50)
	pad.LineTo(60, 60)
	pad.End()
	pad.Clear()

	r, _, _, _ := pad.Image().At(50, 50).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}
