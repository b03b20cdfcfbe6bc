package genai

import (
	"context"
	"fmt"
	"time"
)

// videoPollInterval is how often a submitted video job is checked.
const videoPollInterval = 5 * time.Second

// VideoRequest describes an intro video job.
type VideoRequest struct {
	Prompt string
	// SeedImage optionally anchors the video to a generated portrait.
	SeedImage []byte
	// Aspect is "16:9" or "9:16".
	Aspect string
}

// SubmitVideo starts a video generation job and returns its ID.
func (c *Client) SubmitVideo(ctx context.Context, req *VideoRequest) (string, error) {
	body := map[string]any{
		"prompt": req.Prompt,
		"aspect": req.Aspect,
	}
	if len(req.SeedImage) > 0 {
		body["seed_image"] = req.SeedImage
	}

	var out struct {
		JobID string `json:"job_id"`
	}
	err := c.withRetry(ctx, "video_submit", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/videos:generate", body, &out)
	})
	if err != nil {
		return "", err
	}
	if out.JobID == "" {
		return "", fmt.Errorf("video submit: empty job id")
	}
	return out.JobID, nil
}

// VideoStatus is one poll result.
type VideoStatus struct {
	Done bool   `json:"done"`
	URI  string `json:"uri"`
}

// PollVideoOnce checks a job a single time.
func (c *Client) PollVideoOnce(ctx context.Context, jobID string) (*VideoStatus, error) {
	var out VideoStatus
	err := c.withRetry(ctx, "video_poll", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/videos:status", map[string]any{"job_id": jobID}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitVideo polls the job every 5 seconds until it finishes or ctx is
// cancelled, returning the final video URI.
func (c *Client) WaitVideo(ctx context.Context, jobID string) (string, error) {
	ticker := time.NewTicker(videoPollInterval)
	defer ticker.Stop()

	for {
		status, err := c.PollVideoOnce(ctx, jobID)
		if err != nil {
			return "", err
		}
		if status.Done {
			if status.URI == "" {
				return "", fmt.Errorf("video job %s finished without a uri", jobID)
			}
			return status.URI, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
