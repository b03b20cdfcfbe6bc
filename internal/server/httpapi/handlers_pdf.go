package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/dmitrijs2005/portraitstudio/internal/pdfx"
)

func (s *Server) handleSOP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := pdfx.SOP(&buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePDF(w, "photo-session-sop.pdf", buf.Bytes())
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := pdfx.Certificate(&buf, user.Name, user.ID, time.Now()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePDF(w, "membership-certificate.pdf", buf.Bytes())
}

func (s *Server) writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
