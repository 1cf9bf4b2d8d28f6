// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// Enrichment is the contract for model output (EnrichedPayload).
//
//go:embed enrichment.schema.json
var Enrichment string
