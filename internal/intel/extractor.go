// Package intel turns page text into structured company intelligence with a
// single language model call.
package intel

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/llm"
	"github.com/jonathan/company-enricher/internal/resilience"
	"github.com/jonathan/company-enricher/internal/schemas"
	"github.com/jonathan/company-enricher/internal/types"
)

// DefaultModelTimeout bounds one Extract call, retries included.
const DefaultModelTimeout = 60 * time.Second

// Input is everything the model sees about one company.
type Input struct {
	URL         string
	CompanyName string
	Overview    string
	PageText    string
}

// Options tunes an Extractor.
type Options struct {
	Tier         llm.ModelTier
	Timeout      time.Duration
	MaxRetries   int
	StrictSchema bool
}

// DefaultOptions returns a single-attempt, schema-checked configuration.
func DefaultOptions() Options {
	return Options{
		Tier:         llm.TierStandard,
		Timeout:      DefaultModelTimeout,
		StrictSchema: true,
	}
}

// Extractor builds the prompt, calls the model and parses its answer.
type Extractor struct {
	client  llm.Client
	credErr error
	opts    Options
	retry   resilience.RetryConfig
	newID   func() string
}

// New creates an Extractor for the provider in cfg. A missing apiKey is not
// an error here; every Extract call then fails with a CredentialError so the
// process can still start and report the problem per request.
func New(ctx context.Context, cfg *llm.Config, apiKey string, opts Options) (*Extractor, error) {
	if cfg == nil {
		cfg = llm.DefaultConfig()
	}
	if apiKey == "" {
		return &Extractor{
			credErr: &CredentialError{EnvVar: cfg.Provider.APIKeyEnv()},
			opts:    normalize(opts),
		}, nil
	}

	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return nil, eris.Wrap(err, "intel: create model client")
	}
	return NewWithClient(client, opts), nil
}

// NewWithClient creates an Extractor around an existing client.
func NewWithClient(client llm.Client, opts Options) *Extractor {
	opts = normalize(opts)

	retry := resilience.WithRetries(opts.MaxRetries)
	retry.ShouldRetry = isRetryable
	retry.OnRetry = resilience.RetryLogger("model call")

	return &Extractor{
		client: client,
		opts:   opts,
		retry:  retry,
		newID:  uuid.NewString,
	}
}

func normalize(opts Options) Options {
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultModelTimeout
	}
	return opts
}

func isRetryable(err error) bool {
	return resilience.IsTransient(err) || resilience.IsTransientHTTPStatus(llm.StatusCode(err))
}

// Extract runs one model call for in and returns the parsed payload.
func (e *Extractor) Extract(ctx context.Context, in Input) (*types.EnrichedPayload, error) {
	if e.client == nil {
		if e.credErr != nil {
			return nil, e.credErr
		}
		return nil, eris.New("intel: no model client configured")
	}

	prompt := BuildPrompt(in)

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	model := e.client.GetModel(e.opts.Tier)
	zap.L().Debug("calling model",
		zap.String("model", model),
		zap.String("url", in.URL),
		zap.Int("prompt_chars", len(prompt)),
	)

	raw, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (string, error) {
		return e.client.GenerateJSON(ctx, prompt, e.opts.Tier)
	})
	if err != nil {
		return nil, &ModelError{Model: model, Cause: err}
	}

	payload, err := e.parse(raw)
	if err != nil {
		zap.L().Warn("unusable model output", zap.String("url", in.URL), zap.Error(err))
		return nil, err
	}
	return payload, nil
}

// Close releases the underlying client.
func (e *Extractor) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func (e *Extractor) parse(raw string) (*types.EnrichedPayload, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return nil, &ParseError{Cause: eris.New("model output is not a JSON object")}
	}

	var payload types.EnrichedPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ParseError{Cause: eris.Wrap(err, "decode payload")}
	}

	if e.opts.StrictSchema {
		if err := schemas.ValidateEnrichment(cleaned); err != nil {
			return nil, &ParseError{Cause: err}
		}
	}

	fillDefaults(&payload, e.newID)
	return &payload, nil
}

// fillDefaults replaces nil lists with empty ones and gives every signal an id.
func fillDefaults(p *types.EnrichedPayload, newID func() string) {
	if p.WhatTheyDo == nil {
		p.WhatTheyDo = []string{}
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	if p.Sources == nil {
		p.Sources = []string{}
	}
	if p.Signals == nil {
		p.Signals = []types.Signal{}
	}
	for i := range p.Signals {
		if p.Signals[i].ID == "" {
			p.Signals[i].ID = newID()
		}
	}
}
