// Package pdfx renders the printable documents: the studio SOP poster and
// the per-user compliance certificate. Pages are drawn as rasters with the
// imagex text helpers and embedded full-bleed into A4 PDFs.
package pdfx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dmitrijs2005/portraitstudio/internal/imagex"
)

// Raster sizes before PDF embedding.
const (
	sopWidth   = 1600
	sopHeight  = 2200
	certWidth  = 2000
	certHeight = 1400
)

// A4 dimensions in millimeters.
const (
	a4Width  = 210.0
	a4Height = 297.0
)

var sopSteps = []string{
	"Upload a clear, well-lit photo of the subject facing the camera.",
	"Pick a style from the catalog or upload a custom backdrop.",
	"Review the generated portrait before saving it to the gallery.",
	"The gallery keeps the ten most recent portraits per account.",
	"Use the tools page for crops, watermarks and brand palettes.",
	"Premium styles, upscaling and intro videos need a license code.",
	"Codes are issued by an administrator and work exactly once.",
	"Report generation failures with the request time and account number.",
}

// writeA4 embeds a raster as a full-bleed page.
func writeA4(w io.Writer, img image.Image, orientation string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, &buf)

	pw, ph := a4Width, a4Height
	if orientation == "L" {
		pw, ph = a4Height, a4Width
	}
	pdf.ImageOptions("page", 0, 0, pw, ph, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SOP writes the studio operating procedure as a portrait A4 PDF.
func SOP(w io.Writer) error {
	img, err := buildSOP()
	if err != nil {
		return err
	}
	return writeA4(w, img, "P")
}

func buildSOP() (image.Image, error) {
	out := image.NewNRGBA(image.Rect(0, 0, sopWidth, sopHeight))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ink := color.NRGBA{R: 25, G: 30, B: 45, A: 255}
	accent := imagex.MustHex("#1d4ed8")

	draw.Draw(out, out.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, sopWidth, 260), image.NewUniform(accent), image.Point{}, draw.Src)

	if err := drawCentered(out, "PortraitStudio", sopWidth/2, 120, white, true, 72); err != nil {
		return nil, err
	}
	if err := drawCentered(out, "Standard Operating Procedure", sopWidth/2, 200, white, false, 44); err != nil {
		return nil, err
	}

	y := 420
	for i, step := range sopSteps {
		marker := fmt.Sprintf("%d.", i+1)
		if err := drawAt(out, marker, 120, y, accent, true, 40); err != nil {
			return nil, err
		}
		if err := drawAt(out, step, 210, y, ink, false, 34); err != nil {
			return nil, err
		}
		y += 110
	}

	draw.Draw(out, image.Rect(0, sopHeight-120, sopWidth, sopHeight),
		image.NewUniform(accent), image.Point{}, draw.Src)
	return out, nil
}

// Certificate writes a landscape A4 compliance certificate for one account.
func Certificate(w io.Writer, name, userID string, issued time.Time) error {
	img, err := buildCertificate(name, userID, issued)
	if err != nil {
		return err
	}
	return writeA4(w, img, "L")
}

func buildCertificate(name, userID string, issued time.Time) (image.Image, error) {
	out := image.NewNRGBA(image.Rect(0, 0, certWidth, certHeight))
	parchment := imagex.MustHex("#fdf8ee")
	ink := color.NRGBA{R: 40, G: 35, B: 30, A: 255}
	gold := imagex.MustHex("#b8860b")

	draw.Draw(out, out.Bounds(), image.NewUniform(parchment), image.Point{}, draw.Src)

	// double border
	drawFrame(out, 40, gold, 8)
	drawFrame(out, 64, gold, 2)

	if err := drawCentered(out, "Certificate of Authenticity", certWidth/2, 280, ink, true, 84); err != nil {
		return nil, err
	}
	if err := drawCentered(out, "This certifies that the portraits generated for", certWidth/2, 480, ink, false, 40); err != nil {
		return nil, err
	}
	if err := drawCentered(out, name, certWidth/2, 620, gold, true, 72); err != nil {
		return nil, err
	}
	if err := drawCentered(out, "account "+userID, certWidth/2, 720, ink, false, 40); err != nil {
		return nil, err
	}
	if err := drawCentered(out, "were produced and stored by PortraitStudio.", certWidth/2, 820, ink, false, 40); err != nil {
		return nil, err
	}
	if err := drawCentered(out, "Issued "+issued.Format("2 January 2006"), certWidth/2, 1080, ink, false, 36); err != nil {
		return nil, err
	}

	return out, nil
}

func drawCentered(dst *image.NRGBA, s string, cx, y int, c color.Color, bold bool, size float64) error {
	return imagex.DrawTextCentered(dst, s, cx, y, c, bold, size)
}

func drawAt(dst *image.NRGBA, s string, x, y int, c color.Color, bold bool, size float64) error {
	return imagex.DrawText(dst, s, x, y, c, bold, size)
}

func drawFrame(dst *image.NRGBA, inset int, c color.NRGBA, width int) {
	b := dst.Bounds()
	u := image.NewUniform(c)
	// top, bottom, left, right bands
	draw.Draw(dst, image.Rect(inset, inset, b.Dx()-inset, inset+width), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(inset, b.Dy()-inset-width, b.Dx()-inset, b.Dy()-inset), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(inset, inset, inset+width, b.Dy()-inset), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(b.Dx()-inset-width, inset, b.Dx()-inset, b.Dy()-inset), u, image.Point{}, draw.Src)
}
