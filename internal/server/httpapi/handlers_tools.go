package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"net/http"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/imagex"
	"github.com/dmitrijs2005/portraitstudio/internal/styles"
)

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	type group struct {
		Category string          `json:"category"`
		Options  []styles.Option `json:"options"`
	}

	groups := make([]group, 0, len(styles.Categories))
	for _, cat := range styles.Categories {
		groups = append(groups, group{Category: cat, Options: styles.ByCategory(cat)})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"categories": groups})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"presets": imagex.Presets})
}

type cropRequest struct {
	Image    string `json:"image"`
	PresetID string `json:"preset_id,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	var req cropRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	width, height := req.Width, req.Height
	if req.PresetID != "" {
		preset, found := imagex.PresetByID(req.PresetID)
		if !found {
			s.writeError(w, r, fmt.Errorf("%w: unknown preset %q", common.ErrorValidation, req.PresetID))
			return
		}
		width, height = preset.Width, preset.Height
	}
	if width <= 0 || height <= 0 {
		s.writeError(w, r, fmt.Errorf("%w: a preset or a positive width and height is required", common.ErrorValidation))
		return
	}

	out, err := imagex.CropToAspect(img, width, height)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %s", common.ErrorValidation, err))
		return
	}

	s.respondImage(w, r, out, "jpeg", 90)
}

type ringRequest struct {
	Image string `json:"image"`
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

func (s *Server) handleRing(w http.ResponseWriter, r *http.Request) {
	var req ringRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	ringColor, err := hexField(req.Color, "#1d4ed8")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	width := req.Width
	if width <= 0 {
		width = 12
	}

	s.respondImage(w, r, imagex.Ring(img, ringColor, width), "png", 0)
}

type compressRequest struct {
	Image   string `json:"image"`
	Quality int    `json:"quality,omitempty"`
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	var req compressRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	quality := req.Quality
	if quality <= 0 {
		quality = 80
	}

	out, err := imagex.Compress(img, quality)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"image": imagex.BytesToDataURI(out, "image/jpeg"),
		"bytes": len(out),
	})
}

type convertRequest struct {
	Image   string `json:"image"`
	Format  string `json:"format"`
	Quality int    `json:"quality,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	quality := req.Quality
	if quality <= 0 {
		quality = 90
	}

	uri, err := imagex.EncodeDataURI(img, req.Format, quality)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %s", common.ErrorValidation, err))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"image": uri})
}

type watermarkRequest struct {
	Image   string  `json:"image"`
	Text    string  `json:"text"`
	Opacity float64 `json:"opacity,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Color   string  `json:"color,omitempty"`
}

func (s *Server) handleWatermark(w http.ResponseWriter, r *http.Request) {
	var req watermarkRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	ink, err := hexField(req.Color, "#ffffff")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := imagex.Watermark(img, imagex.WatermarkParams{
		Text:    req.Text,
		Opacity: req.Opacity,
		Size:    req.Size,
		Color:   ink,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondImage(w, r, out, "jpeg", 90)
}

type paletteRequest struct {
	Image  string `json:"image"`
	Colors int    `json:"colors,omitempty"`
	Sheet  bool   `json:"sheet,omitempty"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	var req paletteRequest
	img, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Image })
	if !ok {
		return
	}

	n := req.Colors
	if n <= 0 {
		n = 5
	}
	colors := imagex.Palette(img, n)

	resp := map[string]any{"colors": colors}
	if req.Sheet {
		sheet, err := imagex.BrandSheet(img, colors)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		uri, err := imagex.EncodeDataURI(sheet, "png", 0)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp["sheet"] = uri
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type badgeRequest struct {
	Photo   string `json:"photo"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Accent  string `json:"accent,omitempty"`
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req badgeRequest
	photo, ok := s.decodeImageRequest(w, r, &req, func() string { return req.Photo })
	if !ok {
		return
	}

	accent, err := hexField(req.Accent, "#1d4ed8")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	qr, err := s.qr.Fetch(r.Context(), user.ID, genai.QRParams{Size: 200})
	if err != nil {
		s.writeError(w, r, fmt.Errorf("qr fetch: %w", err))
		return
	}

	name := req.Name
	if name == "" {
		name = user.Name
	}

	out, err := imagex.Badge(photo, qr, imagex.BadgeParams{
		Name:    name,
		Role:    req.Role,
		Number:  user.ID,
		Company: req.Company,
		Accent:  accent,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondImage(w, r, out, "png", 0)
}

type signatureStroke struct {
	Points [][2]int `json:"points"`
}

type signatureRequest struct {
	Strokes []signatureStroke `json:"strokes"`
	Color   string            `json:"color,omitempty"`
	Width   float64           `json:"width,omitempty"`
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}
	if len(req.Strokes) == 0 {
		s.writeError(w, r, fmt.Errorf("%w: at least one stroke is required", common.ErrorValidation))
		return
	}

	ink, err := hexField(req.Color, "#16245c")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pad := imagex.NewSignaturePad(ink, req.Width)
	for _, stroke := range req.Strokes {
		if len(stroke.Points) == 0 {
			continue
		}
		pad.Begin(stroke.Points[0][0], stroke.Points[0][1])
		for _, pt := range stroke.Points[1:] {
			pad.LineTo(pt[0], pt[1])
		}
		pad.End()
	}

	s.respondImage(w, r, pad.Image(), "png", 0)
}

type qrRequest struct {
	Data  string `json:"data"`
	Fg    string `json:"fg,omitempty"`
	Bg    string `json:"bg,omitempty"`
	Plate string `json:"plate,omitempty"`
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	var req qrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}
	if req.Data == "" {
		s.writeError(w, r, fmt.Errorf("%w: data is required", common.ErrorValidation))
		return
	}

	plate, err := hexField(req.Plate, "#ffffff")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	qr, err := s.qr.Fetch(r.Context(), req.Data, genai.QRParams{Fg: req.Fg, Bg: req.Bg})
	if err != nil {
		s.writeError(w, r, fmt.Errorf("qr fetch: %w", err))
		return
	}

	s.respondImage(w, r, imagex.ComposeQR(qr, plate), "png", 0)
}

// decodeImageRequest decodes the JSON body into req, then decodes the data
// URI returned by pick into a raster. On failure it writes the error and
// returns ok=false.
func (s *Server) decodeImageRequest(w http.ResponseWriter, r *http.Request, req any, pick func() string) (image.Image, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return nil, false
	}

	raw, err := imageField(pick(), "image")
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	img, err := imagex.Decode(bytes.NewReader(raw))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: unreadable image", common.ErrorValidation))
		return nil, false
	}
	return img, true
}

func (s *Server) respondImage(w http.ResponseWriter, r *http.Request, img image.Image, format string, quality int) {
	uri, err := imagex.EncodeDataURI(img, format, quality)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"image": uri})
}

// hexField parses an optional hex color, falling back to def when empty.
func hexField(value, def string) (color.NRGBA, error) {
	if value == "" {
		value = def
	}
	c, err := imagex.ParseHex(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %s", common.ErrorValidation, err)
	}
	return c, nil
}
