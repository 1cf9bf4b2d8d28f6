package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/enrich"
	"github.com/jonathan/company-enricher/internal/observability"
	"github.com/jonathan/company-enricher/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich one company from its website",
	Long: "Fetch a company website, extract its readable text and ask the model for a structured report. " +
		"With --company-id the dataset record supplies any missing URL, name and overview, and the result is cached.",
	RunE: runEnrich,
}

var (
	enrichURL       string
	enrichName      string
	enrichOverview  string
	enrichCompanyID string
	enrichJSON      bool
)

func init() {
	enrichCmd.Flags().StringVar(&enrichURL, "url", "", "Company website URL")
	enrichCmd.Flags().StringVar(&enrichName, "name", "", "Company name")
	enrichCmd.Flags().StringVar(&enrichOverview, "overview", "", "Short company description")
	enrichCmd.Flags().StringVar(&enrichCompanyID, "company-id", "", "Dataset company id; the result is cached under it")
	enrichCmd.Flags().BoolVar(&enrichJSON, "json", false, "Print raw JSON instead of a report")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	req := enrich.Request{URL: enrichURL, CompanyName: enrichName, Overview: enrichOverview}
	company, err := resolveCompany(a.companies, enrichCompanyID, &req)
	if err != nil {
		return err
	}

	data, err := a.service.Enrich(ctx, req)
	if err != nil {
		return err
	}

	if company != nil {
		if err := a.cache.Write(ctx, company.ID, data); err != nil {
			zap.L().Warn("cache write failed", zap.String("company_id", company.ID), zap.Error(err))
		}
	}

	return writeReport(cmd.OutOrStdout(), company, data, enrichJSON)
}

// resolveCompany looks up id, if set, and fills the request fields the
// caller left empty from the dataset record.
func resolveCompany(companies dataset.Provider, id string, req *enrich.Request) (*types.Company, error) {
	if id == "" {
		return nil, nil
	}
	company, ok := companies.Get(id)
	if !ok {
		return nil, eris.Errorf("unknown company id %q", id)
	}
	if req.URL == "" {
		req.URL = company.Website
	}
	if req.CompanyName == "" {
		req.CompanyName = company.Name
	}
	if req.Overview == "" {
		req.Overview = company.Description
	}
	return company, nil
}

func writeReport(out io.Writer, company *types.Company, data *types.EnrichedData, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	observability.NewPrinter(out).PrintEnrichment(company, data)
	return nil
}
