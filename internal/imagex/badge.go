package imagex

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Badge layout constants. The card uses the CR80 portrait proportions at
// print resolution.
const (
	badgeWidth  = 638
	badgeHeight = 1012
	badgePhoto  = 300
	badgeQR     = 180
)

// BadgeParams describes one ID badge.
type BadgeParams struct {
	Name    string
	Role    string
	Number  string
	Company string
	Accent  color.NRGBA
}

// Badge composes an ID card: colored header with the company name, circular
// photo with a white ring, name/role/number block, QR plate and an accent
// stripe along the bottom.
func Badge(photo image.Image, qr image.Image, p BadgeParams) (image.Image, error) {
	out := image.NewNRGBA(image.Rect(0, 0, badgeWidth, badgeHeight))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dark := color.NRGBA{R: 30, G: 30, B: 40, A: 255}
	grey := color.NRGBA{R: 110, G: 110, B: 120, A: 255}

	draw.Draw(out, out.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	// header
	headerH := 220
	draw.Draw(out, image.Rect(0, 0, badgeWidth, headerH), image.NewUniform(p.Accent), image.Point{}, draw.Src)
	if p.Company != "" {
		if err := drawTextCentered(out, p.Company, badgeWidth/2, 80, white, weightBold, 38); err != nil {
			return nil, err
		}
	}

	// circular photo overlapping the header edge
	ring := Ring(imaging.Fill(photo, badgePhoto, badgePhoto, imaging.Center, imaging.Lanczos), white, 8)
	photoTop := headerH - badgePhoto/2
	draw.Draw(out,
		image.Rect((badgeWidth-badgePhoto)/2, photoTop, (badgeWidth+badgePhoto)/2, photoTop+badgePhoto),
		ring, image.Point{}, draw.Over)

	// identity block
	y := photoTop + badgePhoto + 70
	if err := drawTextCentered(out, p.Name, badgeWidth/2, y, dark, weightBold, 44); err != nil {
		return nil, err
	}
	y += 54
	if err := drawTextCentered(out, p.Role, badgeWidth/2, y, grey, weightRegular, 30); err != nil {
		return nil, err
	}
	y += 46
	if err := drawTextCentered(out, p.Number, badgeWidth/2, y, p.Accent, weightBold, 28); err != nil {
		return nil, err
	}

	// QR plate
	if qr != nil {
		scaled := imaging.Resize(qr, badgeQR, badgeQR, imaging.Lanczos)
		qrTop := badgeHeight - badgeQR - 120
		draw.Draw(out,
			image.Rect((badgeWidth-badgeQR)/2, qrTop, (badgeWidth+badgeQR)/2, qrTop+badgeQR),
			scaled, image.Point{}, draw.Over)
	}

	// bottom stripe
	draw.Draw(out, image.Rect(0, badgeHeight-40, badgeWidth, badgeHeight),
		image.NewUniform(p.Accent), image.Point{}, draw.Src)

	return out, nil
}
