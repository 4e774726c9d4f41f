package engine

import (
	"database/sql"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"sales-analytics/pkg/models"
)

// Interval selects the bucketing grain of the sales series.
type Interval string

const (
	Daily   Interval = "daily"
	Monthly Interval = "monthly"
)

func (iv Interval) trunc(t time.Time) time.Time {
	if iv == Monthly {
		return truncMonth(t)
	}
	return truncDay(t)
}

func (iv Interval) next(t time.Time) time.Time {
	if iv == Monthly {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// SalesSeries builds a gap-free sales series at the given grain. Buckets are
// real timestamps, every period between the first and last order is present
// (missing ones as zero rows), and all per-bucket metrics come from a single
// pass over the orders. Because the series is densified, the trailing
// rolling window spans elapsed calendar periods, not just rows that happen
// to have data. Year-to-date revenue resets at each calendar-year boundary
// and growth compares against the previous (lagged) period.
func SalesSeries(orders []models.Order, interval Interval, p models.Params) ([]models.SeriesRow, QualityReport) {
	var q QualityReport

	type bucket struct {
		orderCount int
		revenue    decimal.Decimal
		customers  map[uint64]struct{}
	}
	buckets := make(map[time.Time]*bucket)
	var lo, hi time.Time
	for _, o := range orders {
		q.read()
		if o.OrderDate.IsZero() {
			q.exclude("missing order date")
			continue
		}
		if o.TotalAmount.IsNegative() {
			q.exclude("negative total amount")
			continue
		}
		start := interval.trunc(o.OrderDate)
		b := buckets[start]
		if b == nil {
			b = &bucket{revenue: decimal.Zero, customers: make(map[uint64]struct{})}
			buckets[start] = b
		}
		b.orderCount++
		b.revenue = b.revenue.Add(o.TotalAmount)
		b.customers[o.CustomerID] = struct{}{}
		if lo.IsZero() || start.Before(lo) {
			lo = start
		}
		if hi.IsZero() || start.After(hi) {
			hi = start
		}
	}
	if len(buckets) == 0 {
		return nil, q
	}

	var rows []models.SeriesRow
	for start := lo; !start.After(hi); start = interval.next(start) {
		row := models.SeriesRow{PeriodStart: start, Revenue: decimal.Zero}
		if b := buckets[start]; b != nil {
			row.OrderCount = b.orderCount
			row.Customers = len(b.customers)
			row.Revenue = b.revenue
			rev, _ := b.revenue.Float64()
			row.AvgOrderValue = sql.NullFloat64{Float64: rev / float64(b.orderCount), Valid: true}
		}
		rows = append(rows, row)
	}

	revs := make([]float64, len(rows))
	for i := range rows {
		revs[i], _ = rows[i].Revenue.Float64()
	}

	ytd := decimal.Zero
	for i := range rows {
		winStart := i - p.RollingPeriods + 1
		if winStart < 0 {
			winStart = 0
		}
		sum := 0.0
		for _, v := range revs[winStart : i+1] {
			sum += v
		}
		rows[i].RollingAvg = sql.NullFloat64{Float64: sum / float64(i+1-winStart), Valid: true}

		if i == 0 || rows[i].PeriodStart.Year() != rows[i-1].PeriodStart.Year() {
			ytd = decimal.Zero
		}
		ytd = ytd.Add(rows[i].Revenue)
		rows[i].YTDRevenue = ytd

		if i > 0 && revs[i-1] != 0 {
			rows[i].Growth = sql.NullFloat64{
				Float64: (revs[i] - revs[i-1]) / revs[i-1],
				Valid:   true,
			}
		}
	}

	if mean, sd := meanStddev(revs); sd > 0 {
		for i := range rows {
			if math.Abs(revs[i]-mean) > 2*sd {
				rows[i].Anomaly = true
			}
		}
	}
	return rows, q
}

func meanStddev(xs []float64) (mean, sd float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		sd += (x - mean) * (x - mean)
	}
	sd = math.Sqrt(sd / float64(len(xs)))
	return mean, sd
}
