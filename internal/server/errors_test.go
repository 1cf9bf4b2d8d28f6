package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/intel"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "URL required", err: enrich.ErrURLRequired, expected: http.StatusBadRequest},
		{name: "wrapped URL required", err: fmt.Errorf("enrich: %w", enrich.ErrURLRequired), expected: http.StatusBadRequest},
		{name: "invalid cache entry", err: &cache.InvalidEntryError{Cause: errors.New("bad")}, expected: http.StatusBadRequest},
		{name: "company not found", err: ErrCompanyNotFound, expected: http.StatusNotFound},
		{name: "credential", err: &intel.CredentialError{EnvVar: "GEMINI_API_KEY"}, expected: http.StatusInternalServerError},
		{name: "parse", err: &intel.ParseError{Cause: errors.New("eof")}, expected: http.StatusInternalServerError},
		{name: "model", err: &intel.ModelError{Model: "m", Cause: errors.New("503")}, expected: http.StatusInternalServerError},
		{name: "unknown", err: assert.AnError, expected: http.StatusInternalServerError},
		{name: "nil", err: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "URL required", err: enrich.ErrURLRequired, expected: "URL is required"},
		{name: "credential", err: &intel.CredentialError{EnvVar: "GEMINI_API_KEY"}, expected: "GEMINI_API_KEY is not configured."},
		{name: "wrapped credential", err: fmt.Errorf("enrich: %w", &intel.CredentialError{EnvVar: "OPENAI_API_KEY"}), expected: "OPENAI_API_KEY is not configured."},
		{name: "parse", err: &intel.ParseError{Cause: errors.New("eof")}, expected: intel.ParseMessage},
		{name: "model", err: &intel.ModelError{Model: "m", Cause: errors.New("boom")}, expected: "model m request failed: boom"},
		{name: "invalid cache entry", err: &cache.InvalidEntryError{Cause: errors.New("bad")}, expected: "Invalid enrichment data"},
		{name: "unknown is hidden", err: errors.New("dial tcp 10.0.0.1:5432: refused"), expected: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}
