// Package types provides type definitions for structured data used throughout the company enricher.
package types

import (
	"github.com/go-playground/validator/v10"
)

// EnrichRequest is the body of POST /enrich.
type EnrichRequest struct {
	URL         string `json:"url" validate:"required"`
	CompanyName string `json:"companyName,omitempty"`
	Overview    string `json:"overview,omitempty"`
}

// Validate validates the EnrichRequest using the validator.
func (r *EnrichRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
