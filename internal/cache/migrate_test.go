package cache

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-enricher/internal/types"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestMigrate_LegacySingleSignal(t *testing.T) {
	legacy := &types.EnrichedData{
		Summary:        "Acme",
		DerivedSignals: []string{"Hiring surge noted"},
		Timestamp:      "2023-01-01T00:00:00.000Z",
	}

	out := Migrate(legacy)

	require.Len(t, out.Signals, 1)
	sig := out.Signals[0]
	assert.Equal(t, "Hiring surge noted", sig.Description)
	assert.Equal(t, types.CategoryOther, sig.Category)
	assert.Equal(t, types.ConfidenceMedium, sig.Confidence)
	assert.Equal(t, LegacySignalTitle, sig.Title)
	assert.Equal(t, LegacySignalDetectedFrom, sig.DetectedFrom)
	assert.NotEmpty(t, sig.ID)
	assert.Nil(t, out.DerivedSignals)
	assert.Equal(t, "Acme", out.Summary)
	assert.Equal(t, legacy.Timestamp, out.Timestamp)
}

func TestMigrate_PreservesOrderAndAssignsUniqueIDs(t *testing.T) {
	legacy := &types.EnrichedData{DerivedSignals: []string{"a", "b", "c"}}

	out := migrate(legacy, sequentialIDs())

	require.Len(t, out.Signals, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, out.Signals[i].Description)
		assert.Equal(t, fmt.Sprintf("id-%d", i+1), out.Signals[i].ID)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	current := &types.EnrichedData{
		Summary: "Acme",
		Signals: []types.Signal{
			{ID: "s1", Title: "Hiring", Category: types.CategoryHiring, Confidence: types.ConfidenceHigh},
		},
	}
	before := append([]types.Signal(nil), current.Signals...)

	once := Migrate(current)
	twice := Migrate(once)

	assert.Equal(t, before, once.Signals)
	assert.Equal(t, before, twice.Signals)
	assert.Equal(t, before, current.Signals)
}

func TestMigrate_BothFieldsPresentKeepsSignals(t *testing.T) {
	data := &types.EnrichedData{
		Signals:        []types.Signal{{ID: "s1", Title: "Funding"}},
		DerivedSignals: []string{"old"},
	}

	out := Migrate(data)

	assert.Equal(t, []types.Signal{{ID: "s1", Title: "Funding"}}, out.Signals)
	assert.Nil(t, out.DerivedSignals)
	assert.Equal(t, []string{"old"}, data.DerivedSignals, "input must not be mutated")
}

func TestMigrate_DoesNotMutateInput(t *testing.T) {
	legacy := &types.EnrichedData{DerivedSignals: []string{"x"}}

	_ = Migrate(legacy)

	assert.Empty(t, legacy.Signals)
	assert.Equal(t, []string{"x"}, legacy.DerivedSignals)
}

func TestMigrate_NoSignalData(t *testing.T) {
	out := Migrate(&types.EnrichedData{Summary: "s"})
	require.NotNil(t, out.Signals)
	assert.Empty(t, out.Signals)
	assert.Nil(t, Migrate(nil))

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"signals":[]`)
}

func TestDecodeStored_Discriminator(t *testing.T) {
	legacy, err := decodeStored([]byte(`{"summary":"x","derivedSignals":["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, SchemaLegacy, legacy.Version)

	current, err := decodeStored([]byte(`{"summary":"x","signals":[{"id":"1","title":"t"}]}`))
	require.NoError(t, err)
	assert.Equal(t, SchemaCurrent, current.Version)

	empty, err := decodeStored([]byte(`{"summary":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, SchemaCurrent, empty.Version)
}

func TestDecodeStored_Rejects(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", "not json", `{"summary":`, `"string"`} {
		_, err := decodeStored([]byte(raw))
		assert.Error(t, err, "input %q", raw)
	}
}

func TestSchemaVersion_String(t *testing.T) {
	assert.Equal(t, "current", SchemaCurrent.String())
	assert.Equal(t, "legacy", SchemaLegacy.String())
	assert.Equal(t, "unknown", SchemaVersion(0).String())
}
