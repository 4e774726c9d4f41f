package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"sales-analytics/pkg/database"
	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/report"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every engine against one snapshot read",
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, repo, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// One snapshot read; the orders slice is shared by three engines.
	customers, err := repo.Customers(ctx, false)
	if err != nil {
		return fmt.Errorf("read customers: %w", err)
	}
	orders, err := repo.Orders(ctx, database.OrderQuery{})
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}
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

	out := cmd.OutOrStdout()
	bar := progressbar.Default(4)

	retention, cohortQual := engine.CohortRetention(orders)
	_ = bar.Add(1)
	pairs, affinityQual := engine.ProductAffinity(items, p)
	_ = bar.Add(1)
	values, clvQual := engine.CustomerValue(customers, orders, p)
	_ = bar.Add(1)
	series, seriesQual := engine.SalesSeries(orders, engine.Daily, p)
	_ = bar.Add(1)

	report.Retention(out, retention)
	report.Quality(out, "cohort", cohortQual)
	report.Affinity(out, pairs, productNames(products))
	report.Quality(out, "affinity", affinityQual)
	report.CustomerValue(out, values, clvCfg.top)
	report.Quality(out, "clv", clvQual)
	report.Series(out, series, engine.Daily)
	report.Quality(out, "timeseries", seriesQual)
	return nil
}
