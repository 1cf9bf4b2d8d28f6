package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/types"
)

// stubEnricher records requests and tracks how many run at once.
type stubEnricher struct {
	mu       sync.Mutex
	requests []enrich.Request
	failURL  string
	delay    time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *stubEnricher) Enrich(_ context.Context, req enrich.Request) (*types.EnrichedData, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if req.URL == s.failURL {
		return nil, errors.New("model unavailable")
	}
	return &types.EnrichedData{
		Summary: "About " + req.CompanyName,
		Signals: []types.Signal{
			{ID: "a", Title: "t", Category: types.CategoryOther, Confidence: types.ConfidenceLow},
		},
		Timestamp: "2024-01-01T00:00:00.000Z",
	}, nil
}

func testCompanies() *dataset.Static {
	return dataset.NewStatic([]types.Company{
		{ID: "1", Name: "Acme", Website: "https://acme.test", Description: "Anvils."},
		{ID: "2", Name: "Globex", Website: "https://globex.test", Description: "Everything."},
		{ID: "3", Name: "Initech", Website: "https://initech.test", Description: "TPS reports."},
		{ID: "4", Name: "Umbrella", Website: "https://umbrella.test", Description: "Pharma."},
	})
}

func TestSelectCompanies(t *testing.T) {
	companies := testCompanies()

	all, err := selectCompanies(companies, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	some, err := selectCompanies(companies, []string{"3", " 1 "})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "Initech", some[0].Name)
	assert.Equal(t, "Acme", some[1].Name)

	_, err = selectCompanies(companies, []string{"1", "99"})
	assert.ErrorContains(t, err, `unknown company id "99"`)
}

func TestRunBatch(t *testing.T) {
	svc := &stubEnricher{failURL: "https://globex.test", delay: 20 * time.Millisecond}
	c := cache.New(cache.NewMemoryStore())
	ctx := context.Background()

	results := runBatch(ctx, svc, c, testCompanies().List(), 2)

	require.Len(t, results, 4)
	for i, id := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, id, results[i].Company.ID)
	}
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[3].Err)

	assert.Len(t, svc.requests, 4, "a failure must not cancel the other pipelines")
	assert.LessOrEqual(t, svc.peak.Load(), int32(2))

	assert.NotNil(t, c.Read(ctx, "1"))
	assert.Nil(t, c.Read(ctx, "2"))
	cached := c.Read(ctx, "4")
	require.NotNil(t, cached)
	assert.Equal(t, "About Umbrella", cached.Summary)
}

func TestRunBatch_UsesDatasetFields(t *testing.T) {
	svc := &stubEnricher{}
	runBatch(context.Background(), svc, cache.New(cache.NewMemoryStore()), testCompanies().List()[:1], 0)

	require.Len(t, svc.requests, 1)
	assert.Equal(t, enrich.Request{URL: "https://acme.test", CompanyName: "Acme", Overview: "Anvils."}, svc.requests[0])
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	failed := printBatchSummary(&buf, []batchResult{
		{Company: types.Company{ID: "1", Name: "Acme"}, Data: &types.EnrichedData{Signals: make([]types.Signal, 3)}},
		{Company: types.Company{ID: "2", Name: "Globex"}, Err: errors.New("boom")},
	})

	assert.Equal(t, 1, failed)
	out := buf.String()
	assert.Contains(t, out, "3 signals")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "1 enriched, 1 failed")
}

func TestResolveCompany(t *testing.T) {
	companies := testCompanies()

	req := enrich.Request{URL: "https://override.test"}
	company, err := resolveCompany(companies, "2", &req)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "https://override.test", req.URL)
	assert.Equal(t, "Globex", req.CompanyName)
	assert.Equal(t, "Everything.", req.Overview)

	req = enrich.Request{URL: "https://adhoc.test"}
	company, err = resolveCompany(companies, "", &req)
	require.NoError(t, err)
	assert.Nil(t, company)
	assert.Equal(t, enrich.Request{URL: "https://adhoc.test"}, req)

	_, err = resolveCompany(companies, "42", &req)
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	data := &types.EnrichedData{Summary: "Acme makes anvils.", Timestamp: "2024-01-01T00:00:00.000Z"}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, nil, data, true))
	var decoded types.EnrichedData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *data, decoded)

	buf.Reset()
	require.NoError(t, writeReport(&buf, nil, data, false))
	assert.Contains(t, buf.String(), "COMPANY INTELLIGENCE")
	assert.Contains(t, buf.String(), "No meaningful signals detected.")
}

func TestRunCompanies(t *testing.T) {
	t.Cleanup(func() {
		companiesIndustry, companiesQuery, companiesJSON = "", "", false
	})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	companiesIndustry = "Fintech"
	companiesJSON = true
	require.NoError(t, runCompanies(cmd, nil))

	var list []types.Company
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	require.NotEmpty(t, list)
	for _, c := range list {
		assert.Equal(t, "Fintech", c.Industry)
	}
}

func TestRunCompanies_Industries(t *testing.T) {
	t.Cleanup(func() { companiesIndustries = false })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	companiesIndustries = true
	require.NoError(t, runCompanies(cmd, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"Biotech", "Defense", "Design", "Developer Tools", "Fintech", "HR Tech"}, lines)
}
