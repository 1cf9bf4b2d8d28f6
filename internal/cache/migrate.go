package cache

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/jonathan/company-enricher/internal/types"
)

// Values given to signals upgraded from the legacy flat-string form.
const (
	LegacySignalTitle        = "Disclosed Signal"
	LegacySignalDetectedFrom = "Website Content"
)

// SchemaVersion discriminates the stored enrichment shapes.
type SchemaVersion int

const (
	// SchemaCurrent entries carry structured Signals.
	SchemaCurrent SchemaVersion = iota + 1
	// SchemaLegacy entries carry only flat DerivedSignals strings.
	SchemaLegacy
)

func (v SchemaVersion) String() string {
	switch v {
	case SchemaCurrent:
		return "current"
	case SchemaLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// storedEnrichment is a decoded cache entry tagged with its shape.
type storedEnrichment struct {
	Version SchemaVersion
	Data    types.EnrichedData
}

// decodeStored parses a cache blob. Only JSON objects are accepted.
func decodeStored(raw []byte) (storedEnrichment, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return storedEnrichment{}, eris.New("cached enrichment is not a JSON object")
	}

	var data types.EnrichedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return storedEnrichment{}, eris.Wrap(err, "decode cached enrichment")
	}

	version := SchemaCurrent
	if len(data.Signals) == 0 && len(data.DerivedSignals) > 0 {
		version = SchemaLegacy
	}
	return storedEnrichment{Version: version, Data: data}, nil
}

func checkSignals(signals []types.Signal) error {
	for i, sig := range signals {
		if !sig.Category.Valid() {
			return eris.Errorf("signal %d has unknown category %q", i, sig.Category)
		}
		if !sig.Confidence.Valid() {
			return eris.Errorf("signal %d has unknown confidence %q", i, sig.Confidence)
		}
	}
	return nil
}

// current returns the entry in the current shape.
func (s storedEnrichment) current(newID func() string) *types.EnrichedData {
	return migrate(&s.Data, newID)
}

// Migrate upgrades a payload to the current shape. Each legacy string
// becomes a Signal in category Other at Medium confidence. A payload that
// already has Signals keeps them untouched. The input is never mutated and
// DerivedSignals is always cleared on the result.
func Migrate(data *types.EnrichedData) *types.EnrichedData {
	return migrate(data, uuid.NewString)
}

func migrate(data *types.EnrichedData, newID func() string) *types.EnrichedData {
	if data == nil {
		return nil
	}

	out := *data
	out.DerivedSignals = nil

	if len(data.Signals) > 0 {
		return &out
	}
	if len(data.DerivedSignals) == 0 {
		out.Signals = []types.Signal{}
		return &out
	}

	out.Signals = make([]types.Signal, 0, len(data.DerivedSignals))
	for _, legacy := range data.DerivedSignals {
		out.Signals = append(out.Signals, types.Signal{
			ID:           newID(),
			Title:        LegacySignalTitle,
			Category:     types.CategoryOther,
			Confidence:   types.ConfidenceMedium,
			Description:  legacy,
			DetectedFrom: LegacySignalDetectedFrom,
		})
	}
	return &out
}
