package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/imagex"
	"github.com/dmitrijs2005/portraitstudio/internal/server/services"
)

// Image fields in request bodies are data URIs, the format the browser
// canvas produces.

type generateRequest struct {
	Subject        string `json:"subject"`
	StyleID        string `json:"style_id"`
	Background     string `json:"background,omitempty"`
	BackgroundNote string `json:"background_note,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	subject, err := imageField(req.Subject, "subject")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	params := services.GenerateParams{
		Subject:        subject,
		StyleID:        req.StyleID,
		BackgroundNote: req.BackgroundNote,
	}
	if req.Background != "" {
		params.Background, err = imageField(req.Background, "background")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	result, err := s.portraits.Generate(r.Context(), user, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, result)
}

type upscaleRequest struct {
	Image string `json:"image"`
}

func (s *Server) handleUpscale(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req upscaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	img, err := imageField(req.Image, "image")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.portraits.Upscale(r.Context(), user, img)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"image": imagex.BytesToDataURI(out, "image/jpeg"),
	})
}

type chatRequest struct {
	History []genai.Message `json:"history,omitempty"`
	Message string          `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}
	if req.Message == "" {
		s.writeError(w, r, fmt.Errorf("%w: message is required", common.ErrorValidation))
		return
	}

	reply, err := s.portraits.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type videoSubmitRequest struct {
	Prompt    string `json:"prompt"`
	SeedImage string `json:"seed_image,omitempty"`
	Aspect    string `json:"aspect,omitempty"`
}

func (s *Server) handleVideoSubmit(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req videoSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}
	if req.Prompt == "" {
		s.writeError(w, r, fmt.Errorf("%w: prompt is required", common.ErrorValidation))
		return
	}

	vreq := &genai.VideoRequest{Prompt: req.Prompt, Aspect: req.Aspect}
	if req.SeedImage != "" {
		vreq.SeedImage, err = imageField(req.SeedImage, "seed_image")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	jobID, err := s.portraits.SubmitVideo(r.Context(), user, vreq)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

func (s *Server) handleVideoStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	status, err := s.portraits.VideoStatus(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, status)
}

// imageField decodes one data URI image field into raw bytes.
func imageField(uri, name string) ([]byte, error) {
	_, data, err := imagex.DataURIToBytes(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid data URI", common.ErrorValidation, name)
	}
	return data, nil
}
