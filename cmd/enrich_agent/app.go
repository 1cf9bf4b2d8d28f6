package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/config"
	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/fetch"
	"github.com/jonathan/company-enricher/internal/intel"
)

// app holds the components every command shares.
type app struct {
	service   *enrich.Service
	extractor *intel.Extractor
	store     cache.Store
	cache     *cache.Cache
	companies *dataset.Static
}

// newApp wires the pipeline, the cache and the dataset from c.
func newApp(ctx context.Context, c *config.Config) (*app, error) {
	companies, err := dataset.LoadEmbedded()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, c.Cache)
	if err != nil {
		return nil, err
	}

	extractor, err := newExtractor(ctx, c)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	service := enrich.NewService(newFetcher(c.Fetch), extractor,
		enrich.WithFetchRetries(c.Fetch.MaxRetries),
	)

	return &app{
		service:   service,
		extractor: extractor,
		store:     store,
		cache:     cache.New(store),
		companies: companies,
	}, nil
}

func (a *app) Close() {
	if err := a.extractor.Close(); err != nil {
		zap.L().Warn("close model client", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		zap.L().Warn("close cache store", zap.Error(err))
	}
}

// newExtractor never fails for a missing key; the credential error is
// reported when a command first calls the model.
func newExtractor(ctx context.Context, c *config.Config) (*intel.Extractor, error) {
	opts := intel.DefaultOptions()
	opts.Timeout = c.LLM.Timeout()
	opts.MaxRetries = c.LLM.MaxRetries
	opts.StrictSchema = c.Enrich.StrictSchema

	apiKey := c.LLM.APIKey()
	if apiKey == "" {
		zap.L().Warn("model credential missing; enrichment requests will fail",
			zap.String("env", c.LLM.ProviderName().APIKeyEnv()),
		)
	}
	return intel.New(ctx, c.LLM.ModelConfig(), apiKey, opts)
}

func newFetcher(c config.FetchConfig) enrich.PageFetcher {
	if c.UseBrowser {
		r := fetch.NewBrowserRenderer()
		r.Timeout = c.Timeout()
		return r
	}
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Timeout()
	return fetch.NewFetcher(opts)
}

func openStore(ctx context.Context, c config.CacheConfig) (cache.Store, error) {
	switch c.Driver {
	case config.CacheMemory:
		return cache.NewMemoryStore(), nil
	case config.CacheSQLite:
		store, err := cache.NewSQLiteStore(ctx, c.DSN)
		if err != nil {
			return nil, eris.Wrapf(err, "open sqlite cache %s", c.DSN)
		}
		return store, nil
	case config.CachePostgres:
		return cache.NewPostgresStore(ctx, c.DSN)
	default:
		return nil, eris.Errorf("unknown cache driver %q", c.Driver)
	}
}
