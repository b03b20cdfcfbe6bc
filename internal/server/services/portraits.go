package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/imagex"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
	"github.com/dmitrijs2005/portraitstudio/internal/styles"
)

// GenerationAPI is the slice of the generation client used by the portrait
// service.
type GenerationAPI interface {
	Generate(ctx context.Context, req *genai.GenerateRequest) ([]byte, error)
	Upscale(ctx context.Context, image []byte) ([]byte, error)
	Chat(ctx context.Context, history []genai.Message, message string) (string, error)
	SubmitVideo(ctx context.Context, req *genai.VideoRequest) (string, error)
	PollVideoOnce(ctx context.Context, jobID string) (*genai.VideoStatus, error)
}

// Archiver stores original portrait bytes in object storage.
type Archiver interface {
	Enabled() bool
	Upload(ctx context.Context, userID string, data []byte, contentType string) (key string, url string, err error)
}

// PortraitService runs the generation flow: style gating, subject
// compression, the external call, optional archival and the gallery save.
type PortraitService struct {
	api     GenerationAPI
	gallery *GalleryService
	archive Archiver
	logger  logging.Logger
}

func NewPortraitService(api GenerationAPI, gallery *GalleryService, archive Archiver, logger logging.Logger) *PortraitService {
	return &PortraitService{api: api, gallery: gallery, archive: archive, logger: logger}
}

// GenerateParams describes one portrait request.
type GenerateParams struct {
	// Subject is the uploaded photo, any supported format.
	Subject []byte
	// StyleID picks a catalog entry, or styles.CustomBackgroundID.
	StyleID string
	// Background is required when StyleID is the custom background style.
	Background []byte
	// BackgroundNote describes the custom backdrop for the prompt.
	BackgroundNote string
}

// GenerateResult is the produced portrait plus its stored gallery record.
type GenerateResult struct {
	Item       models.GalleryItem `json:"item"`
	ArchiveURL string             `json:"archive_url,omitempty"`
}

// Generate produces a styled portrait for user and saves it to the gallery.
// Premium styles require a premium account.
func (s *PortraitService) Generate(ctx context.Context, user *models.User, p GenerateParams) (*GenerateResult, error) {
	style, err := resolveStyle(p)
	if err != nil {
		return nil, err
	}
	if style.Premium && !user.Premium {
		return nil, fmt.Errorf("%w: style %q needs a premium account", common.ErrPaymentRequired, style.ID)
	}

	subjectImg, err := imagex.Decode(bytes.NewReader(p.Subject))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable subject photo", common.ErrorValidation)
	}
	subject, err := imagex.CompressSubject(subjectImg)
	if err != nil {
		return nil, fmt.Errorf("prepare subject: %w", err)
	}

	raw, err := s.api.Generate(ctx, &genai.GenerateRequest{
		Subject:     subject,
		Background:  p.Background,
		Instruction: style.Prompt,
	})
	if err != nil {
		return nil, err
	}

	item := models.GalleryItem{
		Image:     imagex.BytesToDataURI(raw, "image/jpeg"),
		StyleID:   style.ID,
		StyleName: style.Name,
	}

	var archiveURL string
	if s.archive != nil && s.archive.Enabled() {
		key, url, aerr := s.archive.Upload(ctx, user.ID, raw, "image/jpeg")
		if aerr != nil {
			// archival is best effort; the gallery copy is the product
			s.logger.Warn(ctx, "portrait archive failed", "user_id", user.ID, "error", aerr.Error())
		} else {
			item.ArchiveKey = key
			archiveURL = url
		}
	}

	saved, err := s.gallery.Save(ctx, user.ID, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "portrait generated", "user_id", user.ID, "style", style.ID)
	return &GenerateResult{Item: *saved, ArchiveURL: archiveURL}, nil
}

func resolveStyle(p GenerateParams) (styles.Option, error) {
	if p.StyleID == styles.CustomBackgroundID {
		if len(p.Background) == 0 {
			return styles.Option{}, fmt.Errorf("%w: custom background style needs a backdrop image", common.ErrorValidation)
		}
		return styles.CustomBackground(p.BackgroundNote), nil
	}

	style, ok := styles.ByID(p.StyleID)
	if !ok {
		return styles.Option{}, fmt.Errorf("%w: unknown style %q", common.ErrorValidation, p.StyleID)
	}
	return style, nil
}

// Upscale returns a higher resolution render of a portrait. Premium only.
func (s *PortraitService) Upscale(ctx context.Context, user *models.User, image []byte) ([]byte, error) {
	if !user.Premium {
		return nil, fmt.Errorf("%w: upscaling needs a premium account", common.ErrPaymentRequired)
	}
	return s.api.Upscale(ctx, image)
}

// Chat proxies the style advisor conversation.
func (s *PortraitService) Chat(ctx context.Context, history []genai.Message, message string) (string, error) {
	return s.api.Chat(ctx, history, message)
}

// SubmitVideo starts an intro video job. Premium only.
func (s *PortraitService) SubmitVideo(ctx context.Context, user *models.User, req *genai.VideoRequest) (string, error) {
	if !user.Premium {
		return "", fmt.Errorf("%w: video generation needs a premium account", common.ErrPaymentRequired)
	}
	return s.api.SubmitVideo(ctx, req)
}

// VideoStatus checks a running job once.
func (s *PortraitService) VideoStatus(ctx context.Context, jobID string) (*genai.VideoStatus, error) {
	return s.api.PollVideoOnce(ctx, jobID)
}
