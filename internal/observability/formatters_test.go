package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-enricher/internal/types"
)

func sampleData() *types.EnrichedData {
	return &types.EnrichedData{
		Summary:    "Acme builds payment tools for fintech startups.",
		WhatTheyDo: []string{"Payments API", "Fraud scoring"},
		Keywords:   []string{"fintech", "payments"},
		Signals: []types.Signal{
			{ID: "1", Title: "Blog cadence", Category: types.CategoryContent, Confidence: types.ConfidenceLow, Description: "Posts monthly."},
			{ID: "2", Title: "Hiring engineers", Category: types.CategoryHiring, Confidence: types.ConfidenceHigh, Description: "Five open roles.", DetectedFrom: "Join our team"},
			{ID: "3", Title: "New API", Category: types.CategoryProduct, Confidence: types.ConfidenceMedium, Description: "Launched v2."},
		},
		Sources:   []string{"https://acme.test"},
		Timestamp: "2024-03-05T22:07:09.123Z",
	}
}

func TestPrintEnrichment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	company := &types.Company{ID: "1", Name: "Acme", Industry: "Fintech", Website: "https://acme.test"}
	p.PrintEnrichment(company, sampleData())
	output := buf.String()

	assert.Contains(t, output, "COMPANY INTELLIGENCE")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "Fintech")
	assert.Contains(t, output, "Acme builds payment tools for fintech startups.")
	assert.Contains(t, output, "Payments API")
	assert.Contains(t, output, "Keywords: fintech, payments")
	assert.Contains(t, output, `from: "Join our team"`)
	assert.Contains(t, output, "https://acme.test")
	assert.Contains(t, output, "2024-03-05T22:07:09.123Z")
	assert.NotContains(t, output, NoSignalsText)
}

func TestPrintEnrichment_SignalsStrongestFirst(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEnrichment(nil, sampleData())
	output := buf.String()

	high := strings.Index(output, "Hiring engineers")
	medium := strings.Index(output, "New API")
	low := strings.Index(output, "Blog cadence")
	require.True(t, high >= 0 && medium >= 0 && low >= 0)
	assert.Less(t, high, medium)
	assert.Less(t, medium, low)
}

func TestPrintEnrichment_NoSignals(t *testing.T) {
	var buf bytes.Buffer
	data := sampleData()
	data.Signals = nil

	NewPrinter(&buf).PrintEnrichment(nil, data)
	assert.Contains(t, buf.String(), NoSignalsText)
}

func TestPrintEnrichment_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEnrichment(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintEnrichment_DoesNotReorderInput(t *testing.T) {
	var buf bytes.Buffer
	data := sampleData()
	NewPrinter(&buf).PrintEnrichment(nil, data)
	assert.Equal(t, "1", data.Signals[0].ID)
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	data := sampleData()
	data.Summary = strings.Repeat("long summary text ", 20)
	data.Sources = []string{"https://example.com/" + strings.Repeat("x", 200)}

	NewPrinter(&buf).PrintEnrichment(nil, data)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"supercalifragilistic"}, wrap("supercalifragilistic", 5))
}

func TestPrintCompanies(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanies([]types.Company{
		{ID: "1", Name: "Stripe", Industry: "Fintech", Website: "https://stripe.com"},
		{ID: "3", Name: "Linear", Industry: "Developer Tools", Website: "https://linear.app"},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1"))
	assert.Contains(t, lines[1], "Linear")

	buf.Reset()
	p.PrintCompanies(nil)
	assert.Equal(t, "No companies found.\n", buf.String())
}
