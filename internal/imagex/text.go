package imagex

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Text weight selectors for drawText.
type fontWeight int

const (
	weightRegular fontWeight = iota
	weightBold
)

var (
	fontOnce    sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontErr     error
)

func loadFonts() error {
	fontOnce.Do(func() {
		fontRegular, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		fontBold, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

func newFace(weight fontWeight, size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	f := fontRegular
	if weight == weightBold {
		f = fontBold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawText renders s onto dst with its baseline at (x, y).
func drawText(dst draw.Image, s string, x, y int, c color.Color, weight fontWeight, size float64) error {
	face, err := newFace(weight, size)
	if err != nil {
		return err
	}
	defer face.Close()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	return nil
}

// measureText returns the advance width of s in pixels for the given face
// parameters.
func measureText(s string, weight fontWeight, size float64) (int, error) {
	face, err := newFace(weight, size)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return font.MeasureString(face, s).Ceil(), nil
}

// drawTextCentered renders s horizontally centered around cx with baseline y.
func drawTextCentered(dst draw.Image, s string, cx, y int, c color.Color, weight fontWeight, size float64) error {
	w, err := measureText(s, weight, size)
	if err != nil {
		return err
	}
	return drawText(dst, s, cx-w/2, y, c, weight, size)
}

// DrawText renders s onto dst with its baseline at (x, y), in the bundled
// Go font.
func DrawText(dst draw.Image, s string, x, y int, c color.Color, bold bool, size float64) error {
	return drawText(dst, s, x, y, c, pickWeight(bold), size)
}

// DrawTextCentered renders s horizontally centered around cx with baseline y.
func DrawTextCentered(dst draw.Image, s string, cx, y int, c color.Color, bold bool, size float64) error {
	return drawTextCentered(dst, s, cx, y, c, pickWeight(bold), size)
}

func pickWeight(bold bool) fontWeight {
	if bold {
		return weightBold
	}
	return weightRegular
}
