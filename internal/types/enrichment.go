package types

import "sort"

// SignalCategory classifies what kind of observation a signal is.
type SignalCategory string

// Signal categories accepted from the model.
const (
	CategoryHiring  SignalCategory = "Hiring"
	CategoryProduct SignalCategory = "Product"
	CategoryGrowth  SignalCategory = "Growth"
	CategoryFunding SignalCategory = "Funding"
	CategoryContent SignalCategory = "Content"
	CategoryOther   SignalCategory = "Other"
)

// SignalCategories lists every valid category in display order.
func SignalCategories() []SignalCategory {
	return []SignalCategory{
		CategoryHiring,
		CategoryProduct,
		CategoryGrowth,
		CategoryFunding,
		CategoryContent,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c SignalCategory) Valid() bool {
	for _, known := range SignalCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Confidence is the model's certainty about a signal.
type Confidence string

// Confidence levels, highest first.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Rank returns the ordering weight of a confidence level (High=3, Medium=2, Low=1).
// Unknown values rank below Low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	return c.Rank() > 0
}

// Signal is one categorized, confidence-rated observation about a company.
// DetectedFrom is a short excerpt of the source text that justifies the signal.
type Signal struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Category     SignalCategory `json:"category"`
	Confidence   Confidence     `json:"confidence"`
	Description  string         `json:"description"`
	DetectedFrom string         `json:"detectedFrom"`
}

// EnrichedPayload is the structured output of one model call, before the
// orchestrator stamps a timestamp onto it.
type EnrichedPayload struct {
	Summary    string   `json:"summary"`
	WhatTheyDo []string `json:"whatTheyDo"`
	Keywords   []string `json:"keywords"`
	Signals    []Signal `json:"signals"`
	Sources    []string `json:"sources"`
}

// EnrichedData is an enrichment result attached to a company id.
//
// DerivedSignals is the legacy flat-string form. It is only populated on
// payloads read from old cache entries; after migration Signals is the only
// field consumers read, and it is always serialized, empty or not.
type EnrichedData struct {
	Summary        string   `json:"summary"`
	WhatTheyDo     []string `json:"whatTheyDo"`
	Keywords       []string `json:"keywords"`
	Signals        []Signal `json:"signals"`
	DerivedSignals []string `json:"derivedSignals,omitempty"`
	Sources        []string `json:"sources"`
	Timestamp      string   `json:"timestamp"`
}

// NewEnrichedData attaches a timestamp to a payload.
func NewEnrichedData(p *EnrichedPayload, timestamp string) *EnrichedData {
	return &EnrichedData{
		Summary:    p.Summary,
		WhatTheyDo: p.WhatTheyDo,
		Keywords:   p.Keywords,
		Signals:    p.Signals,
		Sources:    p.Sources,
		Timestamp:  timestamp,
	}
}

// SortSignals returns a copy of signals ordered High → Medium → Low.
// Signals with equal confidence keep their original relative order.
func SortSignals(signals []Signal) []Signal {
	sorted := make([]Signal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence.Rank() > sorted[j].Confidence.Rank()
	})
	return sorted
}
