package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get(EnrichmentFile, KeyExtractIntelligence)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.CompanyName}}")
	assert.Contains(t, prompt, "{{.PageText}}")
	assert.Contains(t, prompt, `"sources": ["{{.URL}}"]`)
	assert.Contains(t, prompt, "Hiring, Product, Growth, Funding, Content, Other")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(EnrichmentFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(EnrichmentFile, KeyExtractIntelligence))
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_RepeatedPlaceholder(t *testing.T) {
	result := Format("{{.URL}} and again {{.URL}}", map[string]string{"URL": "https://acme.test"})
	assert.Equal(t, "https://acme.test and again https://acme.test", result)
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "A={{.A}} B={{.B}}"
	data := map[string]string{
		"A": "{{.B}}",
		"B": "bee",
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, "A={{.B}} B=bee", Format(template, data))
	}
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	assert.Equal(t, template, Format(template, map[string]string{"Key": "Value"}))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}
