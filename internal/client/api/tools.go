package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Crop runs a photo through a social-media size preset and returns the
// resulting image bytes.
func (c *Client) Crop(ctx context.Context, image []byte, mime, presetID string) ([]byte, error) {
	var out struct {
		Image string `json:"image"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/tools/crop", map[string]string{
		"image":     toDataURI(image, mime),
		"preset_id": presetID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return fromDataURI(out.Image)
}

func (c *Client) Watermark(ctx context.Context, image []byte, mime, text string) ([]byte, error) {
	var out struct {
		Image string `json:"image"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/tools/watermark", map[string]string{
		"image": toDataURI(image, mime),
		"text":  text,
	}, &out)
	if err != nil {
		return nil, err
	}
	return fromDataURI(out.Image)
}

func (c *Client) QR(ctx context.Context, data string) ([]byte, error) {
	var out struct {
		Image string `json:"image"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/tools/qr", map[string]string{"data": data}, &out)
	if err != nil {
		return nil, err
	}
	return fromDataURI(out.Image)
}

func fromDataURI(uri string) ([]byte, error) {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("malformed image in response")
	}
	return base64.StdEncoding.DecodeString(payload)
}
