package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/models"
	"sales-analytics/pkg/report"
)

var affinityCfg struct {
	minPairCount  int
	minConfidence float64
}

var affinityCmd = &cobra.Command{
	Use:   "affinity",
	Short: "Product co-occurrence metrics (support, confidence, lift)",
	RunE:  runAffinity,
}

func init() {
	rootCmd.AddCommand(affinityCmd)
	affinityCmd.Flags().IntVar(&affinityCfg.minPairCount, "min-pair-count", 5, "minimum co-occurrence count per pair")
	affinityCmd.Flags().Float64Var(&affinityCfg.minConfidence, "min-confidence", 0.01, "minimum confidence per pair")
}

func runAffinity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, repo, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := repo.OrderItems(ctx)
	if err != nil {
		return fmt.Errorf("read order_items: %w", err)
	}
	products, err := repo.Products(ctx, false)
	if err != nil {
		return fmt.Errorf("read products: %w", err)
	}

	p, err := runParams()
	if err != nil {
		return err
	}
	p.MinPairCount = affinityCfg.minPairCount
	p.MinConfidence = affinityCfg.minConfidence

	pairs, qual := engine.ProductAffinity(items, p)
	out := cmd.OutOrStdout()
	report.Affinity(out, pairs, productNames(products))
	report.Quality(out, "affinity", qual)
	return nil
}

func productNames(products []models.Product) map[uint64]string {
	names := make(map[uint64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}
