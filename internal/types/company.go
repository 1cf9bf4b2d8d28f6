// Package types provides type definitions for structured data used throughout the company enricher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Company is a read-only record from the static company dataset.
// The enrichment core only reads Website, Name and Description.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
}
