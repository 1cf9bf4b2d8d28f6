package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// handleEnrich handles POST /enrich.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req types.EnrichRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, enrich.ErrURLRequired.Error())
		return
	}

	data, err := s.enricher.Enrich(r.Context(), enrich.Request{
		URL:         req.URL,
		CompanyName: req.CompanyName,
		Overview:    req.Overview,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, data)
}
