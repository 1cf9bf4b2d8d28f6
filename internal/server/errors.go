package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/intel"
)

// Messages for request errors the handlers detect themselves.
const (
	msgInvalidBody       = "Invalid request body"
	msgCompanyNotFound   = "Company not found"
	msgNoEnrichment      = "No enrichment cached"
	msgInvalidEnrichment = "Invalid enrichment data"
	msgInternal          = "Internal server error"
)

// ErrCompanyNotFound indicates an unknown dataset id.
var ErrCompanyNotFound = errors.New(msgCompanyNotFound)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalid *cache.InvalidEntryError
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, enrich.ErrURLRequired), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrCompanyNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the text a client sees for err. Pipeline failures
// surface their own message; anything unrecognized is hidden.
func ErrorMessage(err error) string {
	var (
		credErr  *intel.CredentialError
		parseErr *intel.ParseError
		modelErr *intel.ModelError
		invalid  *cache.InvalidEntryError
	)
	switch {
	case err == nil:
		return msgInternal
	case errors.Is(err, enrich.ErrURLRequired):
		return enrich.ErrURLRequired.Error()
	case errors.Is(err, ErrCompanyNotFound):
		return msgCompanyNotFound
	case errors.As(err, &invalid):
		return msgInvalidEnrichment
	case errors.As(err, &credErr):
		return credErr.Error()
	case errors.As(err, &parseErr):
		return parseErr.Error()
	case errors.As(err, &modelErr):
		return modelErr.Error()
	default:
		return msgInternal
	}
}
