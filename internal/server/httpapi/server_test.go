package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/imagex"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/config"
	"github.com/dmitrijs2005/portraitstudio/internal/server/kv"
	"github.com/dmitrijs2005/portraitstudio/internal/server/services"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

type fakeGenAPI struct {
	generated []byte
	chatReply string
	jobID     string
	err       error
}

func (f *fakeGenAPI) Generate(ctx context.Context, req *genai.GenerateRequest) ([]byte, error) {
	return f.generated, f.err
}

func (f *fakeGenAPI) Upscale(ctx context.Context, image []byte) ([]byte, error) {
	return f.generated, f.err
}

func (f *fakeGenAPI) Chat(ctx context.Context, history []genai.Message, message string) (string, error) {
	return f.chatReply, f.err
}

func (f *fakeGenAPI) SubmitVideo(ctx context.Context, req *genai.VideoRequest) (string, error) {
	return f.jobID, f.err
}

func (f *fakeGenAPI) PollVideoOnce(ctx context.Context, jobID string) (*genai.VideoStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &genai.VideoStatus{Done: true, URI: "https://videos/" + jobID}, nil
}

type disabledArchive struct{}

func (disabledArchive) Enabled() bool { return false }
func (disabledArchive) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, string, error) {
	return "", "", nil
}

type testEnv struct {
	server *Server
	api    *fakeGenAPI
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	st := storage.New(kv.NewMemoryStore(0))

	api := &fakeGenAPI{
		generated: testJPEG(t, 32, 32),
		chatReply: "try the black tie style",
		jobID:     "job-1",
	}

	us := services.NewUserService(st, cfg, logger)
	ls := services.NewLicenseService(st, logger)
	gs := services.NewGalleryService(st, logger)
	ps := services.NewPortraitService(api, gs, disabledArchive{}, logger)

	srv := NewServer(cfg, logger, st, us, ls, gs, ps, genai.NewQRClient("http://127.0.0.1:1"))
	return &testEnv{server: srv, api: api, cfg: cfg}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: 80, B: uint8(y * 7), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img, err := imagex.Decode(bytes.NewReader(testPNG(t, w, h)))
	require.NoError(t, err)
	out, err := imagex.Compress(img, 90)
	require.NoError(t, err)
	return out
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerAndLogin creates an account and returns its ID and a bearer token.
func (e *testEnv) registerAndLogin(t *testing.T) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Jane Smith",
		"email":    fmt.Sprintf("jane%d@example.com", len(t.Name())),
		"mobile":   "9876543210",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decodeBody[userResponse](t, rec)

	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"user_id":  user.ID,
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decodeBody[loginResponse](t, rec)
	return user.ID, login.Token
}

// makePremium redeems a bootstrap license code for the user.
func (e *testEnv) makePremium(t *testing.T, token string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/payment/redeem", token, map[string]string{
		"code": "AAAAABBBBBCCCCC",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "x",
		"email":    "not-an-email",
		"mobile":   "123",
		"password": "123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.Contains(t, resp.Error, "name")
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	id, token := env.registerAndLogin(t)
	assert.True(t, strings.HasPrefix(id, "PS-"))
	assert.NotEmpty(t, token)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody[userResponse](t, rec)
	assert.Equal(t, id, user.ID)
	assert.False(t, user.Premium)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/gallery", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/gallery", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVisitCounterStartsFromSeed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/stats/visit", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[map[string]int64](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/stats/visit", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody[map[string]int64](t, rec)

	assert.Equal(t, int64(10241), first["visits"])
	assert.Equal(t, int64(10242), second["visits"])
}

func TestStylesCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/styles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type group struct {
		Category string           `json:"category"`
		Options  []map[string]any `json:"options"`
	}
	resp := decodeBody[map[string][]group](t, rec)
	groups := resp["categories"]
	require.Len(t, groups, 9)
	for _, g := range groups {
		assert.NotEmpty(t, g.Options, "category %s", g.Category)
	}
}

func TestAdminLicenseGeneration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/licenses", "", map[string]int{"count": 5})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/licenses",
		bytes.NewReader([]byte(`{"count":5}`)))
	req.Header.Set("X-Admin-Passcode", env.cfg.AdminPasscode)
	out := httptest.NewRecorder()
	env.server.Router().ServeHTTP(out, req)

	require.Equal(t, http.StatusCreated, out.Code, out.Body.String())
	resp := decodeBody[struct {
		Count int      `json:"count"`
		Codes []string `json:"codes"`
	}](t, out)
	assert.Equal(t, 5, resp.Count)
	require.Len(t, resp.Codes, 5)
	assert.Len(t, resp.Codes[0], 15)
}

func TestRedeemMakesPremium(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	env.makePremium(t, token)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody[userResponse](t, rec)
	assert.True(t, user.Premium)
}

func TestGenerateSavesToGallery(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	subject := imagex.BytesToDataURI(testPNG(t, 48, 48), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/portraits/generate", token, map[string]string{
		"subject":  subject,
		"style_id": "corporate-grey",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeBody[map[string]any](t, rec)
	item, ok := resp["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "corporate-grey", item["style_id"])

	rec = env.do(t, http.MethodGet, "/api/v1/gallery", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[struct {
		Items []map[string]any `json:"items"`
	}](t, rec)
	require.Len(t, list.Items, 1)
}

func TestGeneratePremiumStyleGated(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	subject := imagex.BytesToDataURI(testPNG(t, 48, 48), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/portraits/generate", token, map[string]string{
		"subject":  subject,
		"style_id": "executive-office",
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	env.makePremium(t, token)
	rec = env.do(t, http.MethodPost, "/api/v1/portraits/generate", token, map[string]string{
		"subject":  subject,
		"style_id": "executive-office",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestGenerateUnknownStyle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	subject := imagex.BytesToDataURI(testPNG(t, 48, 48), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/portraits/generate", token, map[string]string{
		"subject":  subject,
		"style_id": "no-such-style",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGalleryDelete(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	subject := imagex.BytesToDataURI(testPNG(t, 48, 48), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/portraits/generate", token, map[string]string{
		"subject":  subject,
		"style_id": "corporate-grey",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	item := resp["item"].(map[string]any)
	itemID := item["id"].(string)

	rec = env.do(t, http.MethodDelete, "/api/v1/gallery/"+itemID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/gallery/"+itemID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/advisor/chat", token, map[string]string{
		"message": "what suits a lawyer?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "try the black tie style", resp["reply"])

	rec = env.do(t, http.MethodPost, "/api/v1/advisor/chat", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoPremiumGated(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/videos", token, map[string]string{
		"prompt": "slow push-in on the portrait",
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	env.makePremium(t, token)
	rec = env.do(t, http.MethodPost, "/api/v1/videos", token, map[string]string{
		"prompt": "slow push-in on the portrait",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)
	resp := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "job-1", resp["job_id"])

	rec = env.do(t, http.MethodGet, "/api/v1/videos/job-1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeBody[genai.VideoStatus](t, rec)
	assert.True(t, status.Done)
}

func TestCropPreset(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	img := imagex.BytesToDataURI(testPNG(t, 200, 100), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/tools/crop", token, map[string]string{
		"image":     img,
		"preset_id": "youtube-thumbnail",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[map[string]string](t, rec)
	_, raw, err := imagex.DataURIToBytes(resp["image"])
	require.NoError(t, err)
	decoded, err := imagex.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1280, decoded.Bounds().Dx())
	assert.Equal(t, 720, decoded.Bounds().Dy())
}

func TestCropRejectsUnknownPreset(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	img := imagex.BytesToDataURI(testPNG(t, 100, 100), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/tools/crop", token, map[string]string{
		"image":     img,
		"preset_id": "vhs-cover",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompressReportsSize(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	img := imagex.BytesToDataURI(testPNG(t, 120, 120), "image/png")
	rec := env.do(t, http.MethodPost, "/api/v1/tools/compress", token, map[string]any{
		"image":   img,
		"quality": 40,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[struct {
		Image string `json:"image"`
		Bytes int    `json:"bytes"`
	}](t, rec)
	assert.True(t, strings.HasPrefix(resp.Image, "data:image/jpeg;base64,"))
	assert.Greater(t, resp.Bytes, 0)
}

func TestSignatureRendering(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/tools/signature", token, map[string]any{
		"strokes": []map[string]any{
			{"points": [][2]int{{100, 200}, {300, 180}, {500, 220}}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[map[string]string](t, rec)
	_, raw, err := imagex.DataURIToBytes(resp["image"])
	require.NoError(t, err)
	decoded, err := imagex.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func TestSignatureRequiresStrokes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/tools/signature", token, map[string]any{
		"strokes": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSOPDownload(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/docs/sop", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestCertificateNeedsAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/docs/certificate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, token := env.registerAndLogin(t)
	rec = env.do(t, http.MethodGet, "/api/v1/docs/certificate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
