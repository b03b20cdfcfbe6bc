package imagex

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	paletteSampleSize = 50
	paletteQuantStep  = 20
)

// Palette extracts the n most frequent colors from img. The image is
// downsampled to a 50x50 grid and each channel is quantized to the nearest
// multiple of 20 before counting, so near-identical shades collapse into one
// bucket. Colors are returned as "#rrggbb" strings, most frequent first.
func Palette(img image.Image, n int) []string {
	if n <= 0 {
		n = 5
	}

	small := imaging.Resize(img, paletteSampleSize, paletteSampleSize, imaging.Box)

	counts := make(map[color.NRGBA]int)
	b := small.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := small.At(x, y).RGBA()
			q := color.NRGBA{
				R: quantize(uint8(r >> 8)),
				G: quantize(uint8(g >> 8)),
				B: quantize(uint8(bl >> 8)),
				A: 255,
			}
			counts[q]++
		}
	}

	type bucket struct {
		c color.NRGBA
		n int
	}
	buckets := make([]bucket, 0, len(counts))
	for c, cnt := range counts {
		buckets = append(buckets, bucket{c, cnt})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].n != buckets[j].n {
			return buckets[i].n > buckets[j].n
		}
		// deterministic order for equal counts
		a, b := buckets[i].c, buckets[j].c
		return uint32(a.R)<<16|uint32(a.G)<<8|uint32(a.B) < uint32(b.R)<<16|uint32(b.G)<<8|uint32(b.B)
	})

	if len(buckets) > n {
		buckets = buckets[:n]
	}

	out := make([]string, 0, len(buckets))
	for _, bk := range buckets {
		out = append(out, fmt.Sprintf("#%02x%02x%02x", bk.c.R, bk.c.G, bk.c.B))
	}
	return out
}

func quantize(v uint8) uint8 {
	q := (int(v) / paletteQuantStep) * paletteQuantStep
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// BrandSheet appends a swatch bar of the extracted palette below img, with
// the hex value printed on each swatch. The bar is at least 100 px tall and
// otherwise 15% of the source height.
func BrandSheet(img image.Image, colors []string) (image.Image, error) {
	b := img.Bounds()
	barH := b.Dy() * 15 / 100
	if barH < 100 {
		barH = 100
	}

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+barH))
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)

	if len(colors) == 0 {
		return out, nil
	}

	swatchW := b.Dx() / len(colors)
	for i, hex := range colors {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}

		x0 := i * swatchW
		x1 := x0 + swatchW
		if i == len(colors)-1 {
			x1 = b.Dx()
		}
		draw.Draw(out, image.Rect(x0, b.Dy(), x1, b.Dy()+barH), image.NewUniform(c), image.Point{}, draw.Src)

		label := labelColor(c)
		if err := drawTextCentered(out, hex, (x0+x1)/2, b.Dy()+barH/2+6, label, weightRegular, 16); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// labelColor picks black or white ink depending on swatch luminance.
func labelColor(c color.NRGBA) color.NRGBA {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 140 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}
