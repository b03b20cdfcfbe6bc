package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/portraitstudio/internal/logging"
)

// Retry policy for transient faults.
const (
	retryBase  = 2 * time.Second
	maxRetries = 3
)

// KeyProvider supplies the current API key and can mint a fresh one when
// the service rejects it.
type KeyProvider interface {
	Key() string
	Refresh(ctx context.Context) error
}

// StaticKey is a KeyProvider with no refresh path; Refresh fails so a
// rejected key is terminal.
type StaticKey string

func (k StaticKey) Key() string { return string(k) }

func (k StaticKey) Refresh(ctx context.Context) error {
	return fmt.Errorf("static key cannot be refreshed: %w", ErrReauthorize)
}

// Message is one turn of the style advisor conversation.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// GenerateRequest describes one portrait generation call.
type GenerateRequest struct {
	// Subject is the pre-compressed subject photo (JPEG).
	Subject []byte
	// Background is an optional backdrop photo for custom-background
	// styles.
	Background []byte
	// Instruction is the full style prompt.
	Instruction string
}

// Client calls the generation service. A zero timeout on the HTTP client is
// deliberate; generation calls are long and bounded by ctx instead.
type Client struct {
	baseURL   string
	keys      KeyProvider
	httpc     *http.Client
	logger    logging.Logger
	retryBase time.Duration
}

func New(baseURL string, keys KeyProvider, logger logging.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		keys:      keys,
		httpc:     &http.Client{},
		logger:    logger,
		retryBase: retryBase,
	}
}

// withRetry runs fn under the shared policy: transient errors back off
// exponentially from 2s for up to 3 retries; a credential rejection
// triggers one key refresh and a single immediate retry; quota exhaustion
// is returned as is.
func (c *Client) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	reauthorized := false

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		switch {
		case isTransient(err):
			c.logger.Warn(ctx, "transient api failure, retrying", "op", op, "error", err.Error())
			return retry.RetryableError(err)

		case isReauthorize(err) && !reauthorized:
			reauthorized = true
			c.logger.Warn(ctx, "credentials rejected, refreshing key", "op", op)
			if rerr := c.keys.Refresh(ctx); rerr != nil {
				return rerr
			}
			return retry.RetryableError(err)
		}

		return err
	})
}

// Generate produces a styled portrait and returns the raw image bytes.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) ([]byte, error) {
	body := map[string]any{
		"subject":     req.Subject,
		"instruction": req.Instruction,
	}
	if len(req.Background) > 0 {
		body["background"] = req.Background
	}

	var out struct {
		Image []byte `json:"image"`
	}
	err := c.withRetry(ctx, "generate", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/portraits:generate", body, &out)
	})
	if err != nil {
		return nil, err
	}
	if len(out.Image) == 0 {
		return nil, fmt.Errorf("generate: empty image in response")
	}
	return out.Image, nil
}

// Upscale returns a higher resolution version of image.
func (c *Client) Upscale(ctx context.Context, image []byte) ([]byte, error) {
	var out struct {
		Image []byte `json:"image"`
	}
	err := c.withRetry(ctx, "upscale", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/portraits:upscale", map[string]any{"image": image}, &out)
	})
	if err != nil {
		return nil, err
	}
	if len(out.Image) == 0 {
		return nil, fmt.Errorf("upscale: empty image in response")
	}
	return out.Image, nil
}

// Chat sends the conversation history plus the new message to the style
// advisor and returns its reply.
func (c *Client) Chat(ctx context.Context, history []Message, message string) (string, error) {
	body := map[string]any{
		"history": history,
		"message": message,
	}

	var out struct {
		Reply string `json:"reply"`
	}
	err := c.withRetry(ctx, "chat", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/advisor:chat", body, &out)
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.keys.Key())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if cerr := classifyStatus(resp.StatusCode, string(raw)); cerr != nil {
		return cerr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func isReauthorize(err error) bool {
	return errors.Is(err, ErrReauthorize)
}
