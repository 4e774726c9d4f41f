// Package report renders derived tables and data-quality summaries for the
// terminal. Dates are formatted only here, at the presentation edge; the
// rows themselves carry real timestamps.
package report

import (
	"database/sql"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"sales-analytics/pkg/engine"
	"sales-analytics/pkg/models"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	return t
}

func fmtNull(f sql.NullFloat64, digits int) string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", digits, f.Float64)
}

// Retention writes the cohort retention matrix rows.
func Retention(w io.Writer, rows []models.RetentionRow) {
	t := newTable(w, []string{"Cohort", "Period", "Customers", "Cohort Size", "Retention"})
	for _, r := range rows {
		t.Append([]string{
			r.CohortMonth.Format("2006-01"),
			fmt.Sprintf("%d", r.PeriodNumber),
			fmt.Sprintf("%d", r.Customers),
			fmt.Sprintf("%d", r.CohortSize),
			fmtNull(r.RetentionRate, 4),
		})
	}
	t.Render()
}

// Affinity writes the product pair metrics. names maps product ids to
// display names; unknown ids fall back to the bare id.
func Affinity(w io.Writer, pairs []models.AffinityPair, names map[uint64]string) {
	label := func(id uint64) string {
		if name, ok := names[id]; ok {
			return name
		}
		return fmt.Sprintf("%d", id)
	}
	t := newTable(w, []string{"Product A", "Product B", "Count", "Support", "Confidence", "Lift"})
	for _, p := range pairs {
		t.Append([]string{
			label(p.ProductA),
			label(p.ProductB),
			fmt.Sprintf("%d", p.PairCount),
			fmt.Sprintf("%.4f", p.Support),
			fmt.Sprintf("%.4f", p.Confidence),
			fmt.Sprintf("%.4f", p.Lift),
		})
	}
	t.Render()
}

// CustomerValue writes CLV records ordered by lifetime value, highest first.
// limit <= 0 writes every record. The input slice is left untouched.
func CustomerValue(w io.Writer, recs []models.CLVRecord, limit int) {
	sorted := make([]models.CLVRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LifetimeValue.GreaterThan(sorted[j].LifetimeValue)
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	t := newTable(w, []string{"Customer", "Orders", "Historic", "Avg Order", "Tenure (y)", "Projected", "CLV", "Last Order"})
	for _, r := range sorted {
		lastOrder := "never"
		if r.LastOrderDate.Valid {
			lastOrder = r.LastOrderDate.Time.Format("2006-01-02")
		}
		t.Append([]string{
			fmt.Sprintf("%d", r.CustomerID),
			fmt.Sprintf("%d", r.OrderCount),
			r.HistoricRevenue.StringFixed(2),
			r.AvgOrderValue.StringFixed(2),
			fmt.Sprintf("%.2f", r.TenureYears),
			r.ProjectedValue.StringFixed(2),
			r.LifetimeValue.StringFixed(2),
			lastOrder,
		})
	}
	t.Render()
}

// Series writes the sales time series at the given grain.
func Series(w io.Writer, rows []models.SeriesRow, interval engine.Interval) {
	layout := "2006-01-02"
	if interval == engine.Monthly {
		layout = "2006-01"
	}
	t := newTable(w, []string{"Period", "Orders", "Customers", "Revenue", "Avg Order", "Rolling Avg", "YTD", "Growth", ""})
	for _, r := range rows {
		flag := ""
		if r.Anomaly {
			flag = color.RedString("anomaly")
		}
		t.Append([]string{
			r.PeriodStart.Format(layout),
			fmt.Sprintf("%d", r.OrderCount),
			fmt.Sprintf("%d", r.Customers),
			r.Revenue.StringFixed(2),
			fmtNull(r.AvgOrderValue, 2),
			fmtNull(r.RollingAvg, 2),
			r.YTDRevenue.StringFixed(2),
			fmtNull(r.Growth, 4),
			flag,
		})
	}
	t.Render()
}

// Quality writes one engine's consumption summary with per-reason exclusion
// counts, so filtered rows are visible rather than silently dropped.
func Quality(w io.Writer, name string, q engine.QualityReport) {
	fmt.Fprintf(w, "%s %s: %d rows consumed, %d excluded\n",
		color.GreenString("✔"), name, q.RowsRead, q.RowsExcluded)
	for _, line := range q.ReasonLines() {
		fmt.Fprintf(w, "  %s %s\n", color.YellowString("!"), line)
	}
}
