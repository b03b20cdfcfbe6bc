package genai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portraitstudio/internal/logging"
)

type fakeKeys struct {
	key       string
	refreshed atomic.Int32
	fail      bool
}

func (f *fakeKeys) Key() string { return f.key }

func (f *fakeKeys) Refresh(ctx context.Context) error {
	f.refreshed.Add(1)
	if f.fail {
		return ErrReauthorize
	}
	f.key = "fresh-key"
	return nil
}

func newTestClient(t *testing.T, url string, keys KeyProvider) *Client {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	c := New(url, keys, logger)
	c.retryBase = time.Millisecond
	return c
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/portraits:generate", r.URL.Path)
		assert.Equal(t, "k1", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "subject")
		assert.Contains(t, body, "instruction")

		json.NewEncoder(w).Encode(map[string]any{"image": []byte{1, 2, 3}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k1"})
	img, err := c.Generate(context.Background(), &GenerateRequest{
		Subject:     []byte("jpeg"),
		Instruction: "corporate grey",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, img)
}

func TestGenerate_RetriesTransient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"image": []byte{9}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k1"})
	img, err := c.Generate(context.Background(), &GenerateRequest{Subject: []byte("x"), Instruction: "i"})
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, img)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k1"})
	_, err := c.Generate(context.Background(), &GenerateRequest{Subject: []byte("x"), Instruction: "i"})
	require.Error(t, err)
	// initial attempt plus three retries
	assert.Equal(t, int32(4), calls.Load())
}

func TestGenerate_QuotaIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k1"})
	_, err := c.Generate(context.Background(), &GenerateRequest{Subject: []byte("x"), Instruction: "i"})
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_ReauthorizesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "fresh-key" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"image": []byte{7}})
	}))
	defer srv.Close()

	keys := &fakeKeys{key: "stale"}
	c := newTestClient(t, srv.URL, keys)
	img, err := c.Generate(context.Background(), &GenerateRequest{Subject: []byte("x"), Instruction: "i"})
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, img)
	assert.Equal(t, int32(1), keys.refreshed.Load())
}

func TestGenerate_SecondRejectionIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "stale"})
	_, err := c.Generate(context.Background(), &GenerateRequest{Subject: []byte("x"), Instruction: "i"})
	assert.ErrorIs(t, err, ErrReauthorize)
	assert.Equal(t, int32(2), calls.Load())
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			History []Message `json:"history"`
			Message string    `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.History, 1)
		json.NewEncoder(w).Encode(map[string]string{"reply": "try the neon studio look"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k"})
	reply, err := c.Chat(context.Background(), []Message{{Role: "user", Text: "hi"}}, "what suits me?")
	require.NoError(t, err)
	assert.Equal(t, "try the neon studio look", reply)
}

func TestVideoSubmitAndPoll(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/videos:generate":
			json.NewEncoder(w).Encode(map[string]string{"job_id": "job-1"})
		case "/v1/videos:status":
			done := polls.Add(1) >= 2
			json.NewEncoder(w).Encode(VideoStatus{Done: done, URI: "https://cdn/video.mp4"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k"})
	jobID, err := c.SubmitVideo(context.Background(), &VideoRequest{Prompt: "intro", Aspect: "16:9"})
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)

	status, err := c.PollVideoOnce(context.Background(), jobID)
	require.NoError(t, err)
	assert.False(t, status.Done)

	status, err = c.PollVideoOnce(context.Background(), jobID)
	require.NoError(t, err)
	assert.True(t, status.Done)
	assert.Equal(t, "https://cdn/video.mp4", status.URI)
}

func TestWaitVideoCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(VideoStatus{Done: false})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := newTestClient(t, srv.URL, &fakeKeys{key: "k"})
	_, err := c.WaitVideo(ctx, "job-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
