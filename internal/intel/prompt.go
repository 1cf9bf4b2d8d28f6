package intel

import (
	"github.com/jonathan/company-enricher/internal/prompts"
)

const (
	unknownCompany = "Unknown"
	noOverview     = "None provided"
)

// extractTemplate is embedded, so a missing key is a build defect.
var extractTemplate = prompts.MustGet(prompts.EnrichmentFile, prompts.KeyExtractIntelligence)

// BuildPrompt renders the extraction prompt for in. Identical input always
// yields an identical prompt.
func BuildPrompt(in Input) string {
	name := in.CompanyName
	if name == "" {
		name = unknownCompany
	}
	overview := in.Overview
	if overview == "" {
		overview = noOverview
	}

	return prompts.Format(extractTemplate, map[string]string{
		"CompanyName": name,
		"URL":         in.URL,
		"Overview":    overview,
		"PageText":    in.PageText,
	})
}
