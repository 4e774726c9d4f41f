package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-analytics/pkg/database"
	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/report"
)

var clvCfg struct {
	projectionYears float64
	minTenureYears  float64
	activeOnly      bool
	top             int
}

var clvCmd = &cobra.Command{
	Use:   "clv",
	Short: "Customer lifetime value, one record per customer",
	RunE:  runCLV,
}

func init() {
	rootCmd.AddCommand(clvCmd)
	clvCmd.Flags().Float64Var(&clvCfg.projectionYears, "projection-years", 2, "linear projection horizon in years")
	clvCmd.Flags().Float64Var(&clvCfg.minTenureYears, "min-tenure-years", 0.5, "tenure floor in years")
	clvCmd.Flags().BoolVar(&clvCfg.activeOnly, "active-only", false, "restrict to active customers")
	clvCmd.Flags().IntVar(&clvCfg.top, "top", 25, "rows to display, 0 for all")
}

func runCLV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, repo, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	customers, err := repo.Customers(ctx, clvCfg.activeOnly)
	if err != nil {
		return fmt.Errorf("read customers: %w", err)
	}
	// All statuses are read on purpose: the engine applies the revenue
	// discipline itself and reports how many orders it refused.
	orders, err := repo.Orders(ctx, database.OrderQuery{})
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}

	p, err := runParams()
	if err != nil {
		return err
	}
	p.ProjectionYears = clvCfg.projectionYears
	p.MinTenureYears = clvCfg.minTenureYears

	recs, qual := engine.CustomerValue(customers, orders, p)
	out := cmd.OutOrStdout()
	report.CustomerValue(out, recs, clvCfg.top)
	report.Quality(out, "clv", qual)
	return nil
}
