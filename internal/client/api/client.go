// Package api is the HTTP client for the portrait studio server. It keeps
// the bearer token from login and maps response statuses back to sentinel
// errors the CLI can branch on.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// LoggedIn reports whether a bearer token is held.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// download issues a GET and returns the raw body, for PDF endpoints.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, statusError(resp)
	}
	return io.ReadAll(resp.Body)
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ErrPaymentRequired, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}

func (c *Client) Register(ctx context.Context, name, email, mobile string, password []byte) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"mobile":   mobile,
		"password": string(password),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and keeps the returned bearer token for later calls.
func (c *Client) Login(ctx context.Context, userID string, password []byte) (*User, error) {
	var out struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"user_id":  userID,
		"password": string(password),
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	c.token = ""
	return err
}

func (c *Client) Session(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/session", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Redeem(ctx context.Context, code string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/v1/payment/redeem", map[string]string{"code": code}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Styles(ctx context.Context) ([]StyleGroup, error) {
	var out struct {
		Categories []StyleGroup `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/styles", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Generate submits a subject photo for a styled portrait. The subject is
// sent as a data URI, the format the server stores.
func (c *Client) Generate(ctx context.Context, subject []byte, mime, styleID string) (*GenerateResult, error) {
	var result GenerateResult
	err := c.do(ctx, http.MethodPost, "/api/v1/portraits/generate", map[string]string{
		"subject":  toDataURI(subject, mime),
		"style_id": styleID,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Gallery(ctx context.Context) ([]GalleryItem, error) {
	var out struct {
		Items []GalleryItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/gallery", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/gallery/"+id, nil, nil)
}

func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/advisor/chat", map[string]string{"message": message}, &out)
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) SOP(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/v1/docs/sop")
}

func (c *Client) Certificate(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/v1/docs/certificate")
}

func toDataURI(data []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
