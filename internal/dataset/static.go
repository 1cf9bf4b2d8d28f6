// Package dataset provides the read-only company list the enricher works from.
package dataset

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jonathan/company-enricher/internal/types"
)

//go:embed companies.json
var companiesJSON []byte

// Provider looks up companies by id.
type Provider interface {
	Get(id string) (*types.Company, bool)
	List() []types.Company
}

// Static is a Provider over a fixed list of companies.
type Static struct {
	companies []types.Company
	byID      map[string]int
}

// NewStatic creates a Provider over companies. Later duplicates of an id are
// ignored.
func NewStatic(companies []types.Company) *Static {
	s := &Static{byID: make(map[string]int, len(companies))}
	for _, c := range companies {
		if _, dup := s.byID[c.ID]; dup {
			continue
		}
		s.byID[c.ID] = len(s.companies)
		s.companies = append(s.companies, c)
	}
	return s
}

// LoadEmbedded returns the dataset compiled into the binary.
func LoadEmbedded() (*Static, error) {
	return Parse(companiesJSON)
}

// Parse decodes a JSON array of companies.
func Parse(data []byte) (*Static, error) {
	var companies []types.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, eris.Wrap(err, "dataset: decode companies")
	}
	return NewStatic(companies), nil
}

// Get returns a copy of the company with id.
func (s *Static) Get(id string) (*types.Company, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	c := s.companies[i]
	return &c, true
}

// List returns every company in dataset order.
func (s *Static) List() []types.Company {
	out := make([]types.Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// Filter narrows companies to one industry ("" or "All" keeps every
// industry) whose name contains query, case-insensitively.
func Filter(companies []types.Company, industry, query string) []types.Company {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]types.Company, 0, len(companies))
	for _, c := range companies {
		if industry != "" && industry != "All" && c.Industry != industry {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Industries returns the distinct industries, sorted.
func Industries(companies []types.Company) []string {
	seen := make(map[string]struct{})
	for _, c := range companies {
		seen[c.Industry] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for industry := range seen {
		out = append(out, industry)
	}
	sort.Strings(out)
	return out
}
