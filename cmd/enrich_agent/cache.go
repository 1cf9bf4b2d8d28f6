package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jonathan/company-enricher/internal/cache"
	"github.com/jonathan/company-enricher/internal/dataset"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and edit cached enrichment reports",
}

var cacheShowJSON bool

var cacheShowCmd = &cobra.Command{
	Use:   "show <companyId>",
	Short: "Print the cached report for a company, upgrading legacy entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

var cachePutCmd = &cobra.Command{
	Use:   "put <companyId> <file>",
	Short: "Store a report JSON file in the cache",
	Args:  cobra.ExactArgs(2),
	RunE:  runCachePut,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <companyId>",
	Short: "Remove the cached report for a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheDelete,
}

func init() {
	cacheShowCmd.Flags().BoolVar(&cacheShowJSON, "json", false, "Print raw JSON instead of a report")

	cacheCmd.AddCommand(cacheShowCmd, cachePutCmd, cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCache opens only the configured store; cache commands never call the
// model.
func openCache(ctx context.Context) (*cache.Cache, func(), error) {
	store, err := openStore(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	return cache.New(store), func() { _ = store.Close() }, nil
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c, closeFn, err := openCache(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	data := c.Read(ctx, args[0])
	if data == nil {
		return eris.Errorf("no enrichment cached for company %q", args[0])
	}

	companies, err := dataset.LoadEmbedded()
	if err != nil {
		return err
	}
	company, _ := companies.Get(args[0])
	return writeReport(cmd.OutOrStdout(), company, data, cacheShowJSON)
}

func runCachePut(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[1])
	if err != nil {
		return eris.Wrap(err, "failed to read report file")
	}

	ctx := context.Background()
	c, closeFn, err := openCache(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := c.WriteRaw(ctx, args[0], raw); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cached report for company %s\n", args[0])
	return nil
}

func runCacheDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c, closeFn, err := openCache(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := c.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed cached report for company %s\n", args[0])
	return nil
}
