package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/types"
)

// keyPrefix namespaces enrichment entries inside a shared store.
const keyPrefix = "enrichment-"

// Key returns the store key for a company's enrichment.
func Key(companyID string) string {
	return keyPrefix + companyID
}

// Cache reads and writes enrichment results through a Store.
type Cache struct {
	store Store
	newID func() string
}

// New creates a Cache over store.
func New(store Store) *Cache {
	return &Cache{store: store, newID: uuid.NewString}
}

// Read returns the cached enrichment for companyID in the current shape, or
// nil when there is none. Malformed entries and store failures also yield
// nil; they are logged, never returned. Legacy entries are rewritten in the
// current shape after a successful read.
func (c *Cache) Read(ctx context.Context, companyID string) *types.EnrichedData {
	key := Key(companyID)

	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		zap.L().Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	stored, err := decodeStored(raw)
	if err != nil {
		zap.L().Debug("ignoring malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}

	data := stored.current(c.newID)
	if stored.Version == SchemaLegacy {
		zap.L().Info("migrated legacy cache entry",
			zap.String("key", key),
			zap.Int("signals", len(data.Signals)),
		)
		if err := c.Write(ctx, companyID, data); err != nil {
			zap.L().Warn("cache write-back failed", zap.String("key", key), zap.Error(err))
		}
	}
	return data
}

// Write stores data for companyID, replacing any previous entry.
func (c *Cache) Write(ctx context.Context, companyID string, data *types.EnrichedData) error {
	if data == nil {
		return eris.New("cache: nil enrichment")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "cache: encode enrichment")
	}
	return c.store.Set(ctx, Key(companyID), raw)
}

// InvalidEntryError is returned by WriteRaw for a blob that is not an
// enrichment object.
type InvalidEntryError struct {
	Cause error
}

func (e *InvalidEntryError) Error() string {
	return "invalid enrichment entry: " + e.Cause.Error()
}

func (e *InvalidEntryError) Unwrap() error {
	return e.Cause
}

// WriteRaw stores a client-supplied blob after checking that it decodes as an
// enrichment object whose signals use known categories and confidence
// levels. The blob is kept as given, in whatever shape it has; migration
// happens on the next Read.
func (c *Cache) WriteRaw(ctx context.Context, companyID string, raw []byte) error {
	stored, err := decodeStored(raw)
	if err == nil {
		err = checkSignals(stored.Data.Signals)
	}
	if err != nil {
		return &InvalidEntryError{Cause: err}
	}
	return c.store.Set(ctx, Key(companyID), raw)
}

// Delete removes the entry for companyID.
func (c *Cache) Delete(ctx context.Context, companyID string) error {
	return c.store.Delete(ctx, Key(companyID))
}
