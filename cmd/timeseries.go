package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-analytics/pkg/database"
	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/report"
)

var seriesCfg struct {
	interval string
	window   int
}

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Gap-free daily or monthly sales rollups with rolling metrics",
	RunE:  runTimeseries,
}

func init() {
	rootCmd.AddCommand(timeseriesCmd)
	timeseriesCmd.Flags().StringVar(&seriesCfg.interval, "interval", "daily", "bucketing grain: daily or monthly")
	timeseriesCmd.Flags().IntVar(&seriesCfg.window, "window", 0, "rolling window in periods (default 7 daily, 3 monthly)")
}

func seriesInterval() (engine.Interval, error) {
	switch seriesCfg.interval {
	case string(engine.Daily):
		return engine.Daily, nil
	case string(engine.Monthly):
		return engine.Monthly, nil
	}
	return "", fmt.Errorf("interval must be %q or %q", engine.Daily, engine.Monthly)
}

func runTimeseries(cmd *cobra.Command, args []string) error {
	interval, err := seriesInterval()
	if err != nil {
		return err
	}

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

	p, err := runParams()
	if err != nil {
		return err
	}
	p.RollingPeriods = seriesWindow(interval)

	rows, qual := engine.SalesSeries(orders, interval, p)
	out := cmd.OutOrStdout()
	report.Series(out, rows, interval)
	report.Quality(out, "timeseries", qual)
	return nil
}

func seriesWindow(interval engine.Interval) int {
	if seriesCfg.window > 0 {
		return seriesCfg.window
	}
	if interval == engine.Monthly {
		return 3
	}
	return 7
}
