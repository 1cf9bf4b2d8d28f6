package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-enricher/internal/dataset"
	"github.com/jonathan/company-enricher/internal/observability"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies in the dataset",
	RunE:  runCompanies,
}

var (
	companiesIndustry   string
	companiesQuery      string
	companiesJSON       bool
	companiesIndustries bool
)

func init() {
	companiesCmd.Flags().StringVar(&companiesIndustry, "industry", "", `Only this industry ("All" for every industry)`)
	companiesCmd.Flags().StringVarP(&companiesQuery, "query", "q", "", "Case-insensitive name filter")
	companiesCmd.Flags().BoolVar(&companiesJSON, "json", false, "Print JSON")
	companiesCmd.Flags().BoolVar(&companiesIndustries, "industries", false, "List the distinct industries instead of companies")
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, _ []string) error {
	all, err := dataset.LoadEmbedded()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if companiesIndustries {
		industries := dataset.Industries(all.List())
		if companiesJSON {
			return json.NewEncoder(out).Encode(industries)
		}
		for _, industry := range industries {
			fmt.Fprintln(out, industry)
		}
		return nil
	}

	list := dataset.Filter(all.List(), companiesIndustry, companiesQuery)
	if companiesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	observability.NewPrinter(out).PrintCompanies(list)
	return nil
}
