package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// Bounds applied before re-encoding.
const (
	compressMaxWidth = 2048
	subjectMaxDim    = 1536
	subjectJPEGQual  = 80
	minCompressQual  = 10
	maxCompressQual  = 100
)

// Compress downsizes img to at most compressMaxWidth wide (keeping aspect)
// and re-encodes it as JPEG at the given quality (10..100).
func Compress(img image.Image, quality int) ([]byte, error) {
	if quality < minCompressQual || quality > maxCompressQual {
		return nil, fmt.Errorf("quality %d out of range [%d, %d]", quality, minCompressQual, maxCompressQual)
	}

	if img.Bounds().Dx() > compressMaxWidth {
		img = imaging.Resize(img, compressMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressSubject prepares an uploaded photo for the generation API: the
// longer side is capped at 1536 px and the result is encoded as JPEG q80.
func CompressSubject(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() >= b.Dy() && b.Dx() > subjectMaxDim {
		img = imaging.Resize(img, subjectMaxDim, 0, imaging.Lanczos)
	} else if b.Dy() > b.Dx() && b.Dy() > subjectMaxDim {
		img = imaging.Resize(img, 0, subjectMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: subjectJPEGQual}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
