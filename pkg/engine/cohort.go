package engine

import (
	"database/sql"
	"sort"
	"time"

	"sales-analytics/pkg/models"
)

// CohortRetention assigns every customer to the month of their earliest
// order and counts distinct customers per (cohort month, period) cell.
// Periods are whole months between the order's month and the cohort month,
// never raw date arithmetic. Output is sorted by cohort month then period,
// so identical input yields identical output.
func CohortRetention(orders []models.Order) ([]models.RetentionRow, QualityReport) {
	var q QualityReport

	usable := func(o models.Order) bool {
		return o.CustomerID != 0 && !o.OrderDate.IsZero()
	}

	// Earliest order date per customer. The cohort comes from this minimum,
	// never from an individual order's own date.
	first := make(map[uint64]time.Time)
	for _, o := range orders {
		q.read()
		if !usable(o) {
			q.exclude("missing customer id or order date")
			continue
		}
		if cur, ok := first[o.CustomerID]; !ok || o.OrderDate.Before(cur) {
			first[o.CustomerID] = o.OrderDate
		}
	}

	type cell struct {
		cohort time.Time
		period int
	}
	active := make(map[cell]map[uint64]struct{})
	for _, o := range orders {
		if !usable(o) {
			continue
		}
		f := first[o.CustomerID]
		c := cell{cohort: truncMonth(f), period: monthsBetween(f, o.OrderDate)}
		if active[c] == nil {
			active[c] = make(map[uint64]struct{})
		}
		active[c][o.CustomerID] = struct{}{}
	}

	// Cohort size is the distinct-customer count at period 0. Every customer
	// appears there by construction, since their first order is period 0.
	sizes := make(map[time.Time]int)
	for c, customers := range active {
		if c.period == 0 {
			sizes[c.cohort] = len(customers)
		}
	}

	rows := make([]models.RetentionRow, 0, len(active))
	for c, customers := range active {
		row := models.RetentionRow{
			CohortMonth:  c.cohort,
			PeriodNumber: c.period,
			Customers:    len(customers),
			CohortSize:   sizes[c.cohort],
		}
		if row.CohortSize > 0 {
			row.RetentionRate = sql.NullFloat64{
				Float64: float64(row.Customers) / float64(row.CohortSize),
				Valid:   true,
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CohortMonth.Equal(rows[j].CohortMonth) {
			return rows[i].CohortMonth.Before(rows[j].CohortMonth)
		}
		return rows[i].PeriodNumber < rows[j].PeriodNumber
	})
	return rows, q
}
