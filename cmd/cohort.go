package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-analytics/pkg/database"
	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/report"
)

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Monthly acquisition cohorts with period-over-period retention",
	RunE:  runCohort,
}

func init() {
	rootCmd.AddCommand(cohortCmd)
}

func runCohort(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, repo, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	orders, err := repo.Orders(ctx, database.OrderQuery{})
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}

	rows, qual := engine.CohortRetention(orders)
	out := cmd.OutOrStdout()
	report.Retention(out, rows)
	report.Quality(out, "cohort", qual)
	return nil
}
