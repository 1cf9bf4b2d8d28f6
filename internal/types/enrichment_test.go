package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidence_Rank(t *testing.T) {
	assert.Equal(t, 3, ConfidenceHigh.Rank())
	assert.Equal(t, 2, ConfidenceMedium.Rank())
	assert.Equal(t, 1, ConfidenceLow.Rank())
	assert.Equal(t, 0, Confidence("Certain").Rank())

	assert.True(t, ConfidenceLow.Valid())
	assert.False(t, Confidence("").Valid())
}

func TestSignalCategory_Valid(t *testing.T) {
	for _, c := range SignalCategories() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, SignalCategory("Partnership").Valid())
	assert.False(t, SignalCategory("hiring").Valid())
}

func TestSortSignals_HighestConfidenceFirst(t *testing.T) {
	signals := []Signal{
		{ID: "a", Confidence: ConfidenceLow},
		{ID: "b", Confidence: ConfidenceHigh},
		{ID: "c", Confidence: ConfidenceMedium},
		{ID: "d", Confidence: ConfidenceHigh},
	}

	sorted := SortSignals(signals)

	ids := make([]string, len(sorted))
	for i, s := range sorted {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
	// input untouched
	assert.Equal(t, "a", signals[0].ID)
}

func TestSortSignals_Empty(t *testing.T) {
	assert.Empty(t, SortSignals(nil))
}

func TestEnrichedData_JSONFieldNames(t *testing.T) {
	data := EnrichedData{
		Summary:    "Builds payments infrastructure.",
		WhatTheyDo: []string{"Card issuing"},
		Keywords:   []string{"fintech"},
		Signals: []Signal{{
			ID:           "sig-1",
			Title:        "Hiring engineers",
			Category:     CategoryHiring,
			Confidence:   ConfidenceHigh,
			Description:  "Twelve open engineering roles.",
			DetectedFrom: "We're hiring",
		}},
		Sources:   []string{"https://example.com"},
		Timestamp: "2026-01-02T03:04:05Z",
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	out := string(raw)
	for _, key := range []string{`"summary"`, `"whatTheyDo"`, `"keywords"`, `"signals"`, `"detectedFrom"`, `"sources"`, `"timestamp"`} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "derivedSignals")
}

func TestEnrichedData_EmptySignalsKeepKey(t *testing.T) {
	raw, err := json.Marshal(EnrichedData{Summary: "s", Signals: []Signal{}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"signals":[]`)
	assert.NotContains(t, string(raw), "derivedSignals")
}

func TestNewEnrichedData(t *testing.T) {
	p := &EnrichedPayload{
		Summary:  "s",
		Keywords: []string{"k"},
		Sources:  []string{"https://example.com"},
	}

	data := NewEnrichedData(p, "2026-01-02T03:04:05Z")

	assert.Equal(t, "s", data.Summary)
	assert.Equal(t, []string{"k"}, data.Keywords)
	assert.Equal(t, "2026-01-02T03:04:05Z", data.Timestamp)
	assert.Nil(t, data.DerivedSignals)
}
