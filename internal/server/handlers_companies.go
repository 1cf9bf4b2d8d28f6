package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/enrich"
)

// handleListCompanies handles GET /companies?industry=&q=.
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.jsonResponse(w, http.StatusOK, dataset.Filter(s.companies.List(), q.Get("industry"), q.Get("q")))
}

// handleListIndustries handles GET /companies/industries.
func (s *Server) handleListIndustries(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, dataset.Industries(s.companies.List()))
}

// handleGetCompany handles GET /companies/{id}.
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, ok := s.companies.Get(chi.URLParam(r, "id"))
	if !ok {
		s.failure(w, r, ErrCompanyNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

// handleEnrichCompany handles POST /companies/{id}/enrich. The result is
// cached under the company id; a failed cache write is logged and the data
// is still returned.
func (s *Server) handleEnrichCompany(w http.ResponseWriter, r *http.Request) {
	company, ok := s.companies.Get(chi.URLParam(r, "id"))
	if !ok {
		s.failure(w, r, ErrCompanyNotFound)
		return
	}

	data, err := s.enricher.Enrich(r.Context(), enrich.Request{
		URL:         company.Website,
		CompanyName: company.Name,
		Overview:    company.Description,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if err := s.cache.Write(r.Context(), company.ID, data); err != nil {
		zap.L().Warn("cache write failed", zap.String("company_id", company.ID), zap.Error(err))
	}

	s.jsonResponse(w, http.StatusOK, data)
}

// handleGetEnrichment handles GET /companies/{id}/enrichment. Legacy
// entries come back migrated.
func (s *Server) handleGetEnrichment(w http.ResponseWriter, r *http.Request) {
	data := s.cache.Read(r.Context(), chi.URLParam(r, "id"))
	if data == nil {
		s.errorResponse(w, http.StatusNotFound, msgNoEnrichment)
		return
	}
	s.jsonResponse(w, http.StatusOK, data)
}

// handlePutEnrichment handles PUT /companies/{id}/enrichment, storing a
// client-held report as is. Ids outside the dataset are accepted so clients
// can cache reports for ad hoc URLs.
func (s *Server) handlePutEnrichment(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.cache.WriteRaw(r.Context(), id, raw); err != nil {
		s.failure(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
