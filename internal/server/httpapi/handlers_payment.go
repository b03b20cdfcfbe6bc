package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
)

type redeemRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	user, err := s.licenses.Redeem(r.Context(), req.Code, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}

type generateLicensesRequest struct {
	Count int `json:"count"`
}

func (s *Server) handleGenerateLicenses(w http.ResponseWriter, r *http.Request) {
	var req generateLicensesRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
			return
		}
	}

	codes, err := s.licenses.Generate(r.Context(), req.Count)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"count": len(codes),
		"codes": codes,
	})
}
