// Package enrich composes page fetch, text extraction and model extraction
// into one enrichment call.
package enrich

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/fetch"
	"github.com/jonathan/company-enricher/internal/intel"
	"github.com/jonathan/company-enricher/internal/resilience"
	"github.com/jonathan/company-enricher/internal/types"
)

// ErrURLRequired is returned when a request has no URL.
var ErrURLRequired = errors.New("URL is required")

// Placeholder texts sent to the model in place of page content.
const (
	InsufficientContentText = "Insufficient readable content found on website natively."
	ScrapeFailedText        = "Scraping failed or was blocked by the website."
)

// MinContentLength is the shortest extracted text worth sending to the model.
const MinContentLength = 50

// TimestampLayout matches an ISO-8601 UTC instant with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// PageFetcher retrieves the raw HTML of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// IntelExtractor turns page text into a payload.
type IntelExtractor interface {
	Extract(ctx context.Context, in intel.Input) (*types.EnrichedPayload, error)
}

// Request identifies the company to enrich.
type Request struct {
	URL         string
	CompanyName string
	Overview    string
}

// Service runs the enrichment pipeline. It holds no per-call state and is
// safe for concurrent use.
type Service struct {
	fetcher    PageFetcher
	extractor  IntelExtractor
	now        func() time.Time
	fetchRetry resilience.RetryConfig
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithFetchRetries allows n extra fetch attempts on transient failures.
// Exhausted retries still degrade to the placeholder text.
func WithFetchRetries(n int) Option {
	return func(s *Service) {
		retry := resilience.WithRetries(n)
		retry.ShouldRetry = s.fetchRetry.ShouldRetry
		retry.OnRetry = s.fetchRetry.OnRetry
		s.fetchRetry = retry
	}
}

// WithFetchRetryConfig replaces the fetch retry policy wholesale.
func WithFetchRetryConfig(cfg resilience.RetryConfig) Option {
	return func(s *Service) {
		s.fetchRetry = cfg
	}
}

// NewService wires a fetcher and an extractor into a pipeline.
func NewService(fetcher PageFetcher, extractor IntelExtractor, opts ...Option) *Service {
	retry := resilience.WithRetries(0)
	retry.ShouldRetry = isRetryableFetch
	retry.OnRetry = resilience.RetryLogger("page fetch")

	s := &Service{
		fetcher:    fetcher,
		extractor:  extractor,
		now:        time.Now,
		fetchRetry: retry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich fetches req.URL, extracts its text and asks the model for
// structured intelligence. Scrape problems degrade to placeholder text;
// model and parse failures are returned.
func (s *Service) Enrich(ctx context.Context, req Request) (*types.EnrichedData, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, ErrURLRequired
	}

	text := s.pageText(ctx, url)

	payload, err := s.extractor.Extract(ctx, intel.Input{
		URL:         url,
		CompanyName: req.CompanyName,
		Overview:    req.Overview,
		PageText:    text,
	})
	if err != nil {
		return nil, err
	}

	return types.NewEnrichedData(payload, s.now().UTC().Format(TimestampLayout)), nil
}

// pageText never fails: it returns extracted text or a placeholder.
func (s *Service) pageText(ctx context.Context, url string) string {
	zap.L().Debug("fetching page", zap.String("url", url))

	html, err := resilience.DoVal(ctx, s.fetchRetry, func(ctx context.Context) (string, error) {
		return s.fetcher.Fetch(ctx, url)
	})
	if err != nil {
		zap.L().Warn("scrape failed, using placeholder", zap.String("url", url), zap.Error(err))
		return ScrapeFailedText
	}

	text := fetch.ExtractText(html)
	if utf8.RuneCountInString(text) < MinContentLength {
		zap.L().Info("page has too little text, using placeholder",
			zap.String("url", url),
			zap.Int("chars", utf8.RuneCountInString(text)),
		)
		return InsufficientContentText
	}

	zap.L().Debug("page text extracted", zap.String("url", url), zap.Int("chars", utf8.RuneCountInString(text)))
	return text
}

func isRetryableFetch(err error) bool {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		if fetchErr.StatusCode != 0 {
			return resilience.IsTransientHTTPStatus(fetchErr.StatusCode)
		}
		return resilience.IsTransient(fetchErr.Cause)
	}
	return resilience.IsTransient(err)
}
