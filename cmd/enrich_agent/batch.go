package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich several dataset companies and cache the results",
	Long: "Run independent enrichment pipelines for dataset companies, a few at a time, " +
		"writing each result to the cache. One company failing does not stop the others.",
	RunE: runBatchCmd,
}

var (
	batchIDs         []string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringSliceVar(&batchIDs, "ids", nil, "Company ids to enrich (default: all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Pipelines to run at once (default from batch.concurrency)")
	rootCmd.AddCommand(batchCmd)
}

// enricher is the slice of enrich.Service the batch runner needs.
type enricher interface {
	Enrich(ctx context.Context, req enrich.Request) (*types.EnrichedData, error)
}

type batchResult struct {
	Company types.Company
	Data    *types.EnrichedData
	Err     error
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	companies, err := selectCompanies(a.companies, batchIDs)
	if err != nil {
		return err
	}

	concurrency := cfg.Batch.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = batchConcurrency
	}

	results := runBatch(ctx, a.service, a.cache, companies, concurrency)
	failed := printBatchSummary(cmd.OutOrStdout(), results)
	if failed > 0 {
		return eris.Errorf("%d of %d companies failed", failed, len(results))
	}
	return nil
}

// selectCompanies returns the companies named by ids, in order, or every
// company when ids is empty.
func selectCompanies(companies dataset.Provider, ids []string) ([]types.Company, error) {
	if len(ids) == 0 {
		return companies.List(), nil
	}
	out := make([]types.Company, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		c, ok := companies.Get(id)
		if !ok {
			return nil, eris.Errorf("unknown company id %q", id)
		}
		out = append(out, *c)
	}
	return out, nil
}

// runBatch enriches each company with at most concurrency pipelines in
// flight. Results keep the input order. Successful results are cached.
func runBatch(ctx context.Context, svc enricher, c *cache.Cache, companies []types.Company, concurrency int) []batchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]batchResult, len(companies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, company := range companies {
		g.Go(func() error {
			data, err := svc.Enrich(gctx, enrich.Request{
				URL:         company.Website,
				CompanyName: company.Name,
				Overview:    company.Description,
			})
			if err == nil {
				if werr := c.Write(gctx, company.ID, data); werr != nil {
					zap.L().Warn("cache write failed", zap.String("company_id", company.ID), zap.Error(werr))
				}
			} else {
				zap.L().Error("enrichment failed", zap.String("company_id", company.ID), zap.Error(err))
			}

			results[i] = batchResult{Company: company, Data: data, Err: err}
			// Failures are reported per company and must not cancel siblings.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// printBatchSummary writes one line per company and returns the failure count.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func printBatchSummary(out io.Writer, results []batchResult) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "✗ %-4s %-20s %v\n", r.Company.ID, r.Company.Name, r.Err)
			continue
		}
		fmt.Fprintf(out, "✓ %-4s %-20s %d signals\n", r.Company.ID, r.Company.Name, len(r.Data.Signals))
	}
	fmt.Fprintf(out, "\n%d enriched, %d failed\n", len(results)-failed, failed)
	return failed
}
