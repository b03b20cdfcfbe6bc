package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

// Decode reads PNG, JPEG or WebP data. WebP is decode-only; conversions
// targeting webp are rejected by Encode.
func Decode(r io.Reader) (image.Image, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err == nil {
		return img, nil
	}

	if w, werr := webp.Decode(bytes.NewReader(buf)); werr == nil {
		return w, nil
	}

	return nil, fmt.Errorf("decode image: %w", err)
}

// DecodeFile opens and decodes an image from disk.
func DecodeFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img in the requested format. Supported formats are "png"
// and "jpeg" ("jpg" accepted); quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	case "jpeg", "jpg":
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// EncodeDataURI renders img to a base64 data URI in the given format.
func EncodeDataURI(img image.Image, format string, quality int) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return "", err
	}
	return BytesToDataURI(buf.Bytes(), "image/"+normalizeFormat(format)), nil
}

func normalizeFormat(format string) string {
	if format == "jpg" {
		return "jpeg"
	}
	return format
}
