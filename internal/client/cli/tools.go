package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Crop prompts for a photo and a social-media preset and saves the cropped
// copy under the downloads directory.
func (a *App) Crop(ctx context.Context) error {
	path, data, err := a.readPhoto()
	if err != nil {
		return err
	}

	presetID, err := getSimpleText(a.reader, "Preset ID (e.g. linkedin-banner)", os.Stdout)
	if err != nil {
		return err
	}

	out, err := a.api.Crop(ctx, data, mimeByExt(path), presetID)
	if err != nil {
		log.Printf("Crop failed: %s", err.Error())
		return err
	}
	return a.saveDoc(outputName(path, presetID, ".jpg"), out)
}

// Watermark prompts for a photo and a caption and saves the branded copy.
func (a *App) Watermark(ctx context.Context) error {
	path, data, err := a.readPhoto()
	if err != nil {
		return err
	}

	text, err := getSimpleText(a.reader, "Watermark text", os.Stdout)
	if err != nil {
		return err
	}

	out, err := a.api.Watermark(ctx, data, mimeByExt(path), text)
	if err != nil {
		log.Printf("Watermark failed: %s", err.Error())
		return err
	}
	return a.saveDoc(outputName(path, "watermarked", ".jpg"), out)
}

// QR renders a QR code for arbitrary text and saves it as a PNG.
func (a *App) QR(ctx context.Context) error {
	data, err := getSimpleText(a.reader, "Text or URL to encode", os.Stdout)
	if err != nil {
		return err
	}

	out, err := a.api.QR(ctx, data)
	if err != nil {
		log.Printf("QR generation failed: %s", err.Error())
		return err
	}
	name := fmt.Sprintf("qr-%d.png", time.Now().Unix())
	return a.saveDoc(name, out)
}

func (a *App) readPhoto() (string, []byte, error) {
	path, err := getSimpleText(a.reader, "Path to your photo", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read %s: %s", path, err.Error())
		return "", nil, err
	}
	return path, data, nil
}

// outputName derives a download file name from the source photo, e.g.
// headshot.png + linkedin-banner -> headshot-linkedin-banner.jpg.
func outputName(path, suffix, ext string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "-" + suffix + ext
}
