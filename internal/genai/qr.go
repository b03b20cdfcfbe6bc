package genai

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// QRClient fetches QR rasters from a create-qr-code style endpoint.
type QRClient struct {
	baseURL string
	httpc   *http.Client
}

func NewQRClient(baseURL string) *QRClient {
	return &QRClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// QRParams controls the requested raster.
type QRParams struct {
	Size   int
	Fg     string // hex without '#'
	Bg     string // hex without '#'
	Margin int
}

// Fetch downloads a QR code encoding data and decodes the raster.
func (c *QRClient) Fetch(ctx context.Context, data string, p QRParams) (image.Image, error) {
	if p.Size <= 0 {
		p.Size = 400
	}

	q := url.Values{}
	q.Set("data", data)
	q.Set("size", fmt.Sprintf("%dx%d", p.Size, p.Size))
	if p.Fg != "" {
		q.Set("color", p.Fg)
	}
	if p.Bg != "" {
		q.Set("bgcolor", p.Bg)
	}
	if p.Margin > 0 {
		q.Set("qzone", strconv.Itoa(p.Margin))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch qr: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qr: %w", err)
	}
	if cerr := classifyStatus(resp.StatusCode, string(raw)); cerr != nil {
		return nil, cerr
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode qr: %w", err)
	}
	return img, nil
}
