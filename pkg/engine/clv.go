package engine

import (
	"database/sql"
	"sort"

	"github.com/shopspring/decimal"

	"sales-analytics/pkg/models"
)

// CustomerValue computes one lifetime-value record per customer. Customers
// anchor the pass and orders are looked up per customer, so a customer with
// no qualifying orders still gets a record with zero revenue and a tenure
// derived from their signup date. Only shipped/delivered orders count toward
// revenue.
//
// The projection is a plain linear extrapolation:
//
//	historic + avg_order_value × orders_per_year × ProjectionYears
//
// No churn adjustment; that is a documented simplification of the model, not
// a defect.
func CustomerValue(customers []models.Customer, orders []models.Order, p models.Params) ([]models.CLVRecord, QualityReport) {
	var q QualityReport

	known := make(map[uint64]struct{}, len(customers))
	for _, c := range customers {
		known[c.ID] = struct{}{}
	}

	byCustomer := make(map[uint64][]models.Order)
	for _, o := range orders {
		q.read()
		if !o.Status.CountsTowardRevenue() {
			q.exclude("status not revenue-counting")
			continue
		}
		if o.TotalAmount.IsNegative() {
			q.exclude("negative total amount")
			continue
		}
		if _, ok := known[o.CustomerID]; !ok {
			q.exclude("order references unknown customer")
			continue
		}
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o)
	}

	recs := make([]models.CLVRecord, 0, len(customers))
	for _, c := range customers {
		rec := models.CLVRecord{
			CustomerID:      c.ID,
			HistoricRevenue: decimal.Zero,
			AvgOrderValue:   decimal.Zero,
			ProjectedValue:  decimal.Zero,
		}

		tenure := float64(monthsBetween(c.SignupDate, p.AsOf)) / 12
		if tenure < p.MinTenureYears {
			tenure = p.MinTenureYears
		}
		rec.TenureYears = tenure

		if own := byCustomer[c.ID]; len(own) > 0 {
			sum := decimal.Zero
			firstOrder, lastOrder := own[0].OrderDate, own[0].OrderDate
			for _, o := range own {
				sum = sum.Add(o.TotalAmount)
				if o.OrderDate.Before(firstOrder) {
					firstOrder = o.OrderDate
				}
				if o.OrderDate.After(lastOrder) {
					lastOrder = o.OrderDate
				}
			}
			rec.OrderCount = len(own)
			rec.HistoricRevenue = sum
			rec.AvgOrderValue = sum.DivRound(decimal.NewFromInt(int64(len(own))), 6)
			perYear := float64(len(own)) / tenure
			rec.ProjectedValue = rec.AvgOrderValue.
				Mul(decimal.NewFromFloat(perYear * p.ProjectionYears)).
				Round(6)
			rec.FirstOrderDate = sql.NullTime{Time: firstOrder, Valid: true}
			rec.LastOrderDate = sql.NullTime{Time: lastOrder, Valid: true}
		}

		rec.LifetimeValue = rec.HistoricRevenue.Add(rec.ProjectedValue)
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CustomerID < recs[j].CustomerID })
	return recs, q
}
