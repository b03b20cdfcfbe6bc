package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/genai"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps application errors to HTTP statuses. Unmatched errors are
// logged and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrPaymentRequired):
		status, msg = http.StatusPaymentRequired, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrCodeConsumed):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrGalleryFull):
		status, msg = http.StatusInsufficientStorage, err.Error()
	case errors.Is(err, genai.ErrQuotaExhausted):
		status, msg = http.StatusTooManyRequests, err.Error()
	case errors.Is(err, genai.ErrReauthorize):
		status, msg = http.StatusBadGateway, "generation service rejected credentials"
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}

	s.writeJSON(w, status, errorResponse{Error: msg})
}
