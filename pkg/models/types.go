package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → typed rows for the four source tables.
*/

// OrderStatus is the terminal status snapshot carried on an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusReturned   OrderStatus = "returned"
)

// CountsTowardRevenue reports whether an order in this status contributes to
// historic revenue. Pending and processing orders are not yet revenue;
// cancelled and returned orders never are.
func (s OrderStatus) CountsTowardRevenue() bool {
	return s == StatusShipped || s == StatusDelivered
}

// Customer as read from the customers table. Customers are soft-deactivated
// via Active, never deleted.
type Customer struct {
	ID         uint64
	Name       string
	Country    string
	SignupDate time.Time
	Active     bool
}

// Product as read from the products table.
type Product struct {
	ID            uint64
	Name          string
	Category      string
	Subcategory   string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	StockQuantity int
	Discontinued  bool
}

// Order as read from the orders table.
type Order struct {
	ID             uint64
	CustomerID     uint64
	OrderDate      time.Time
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	Status         OrderStatus
	PaymentMethod  string
}

// OrderItem as read from the order_items table. Quantity, unit price and
// discount stay nullable here; validity is decided by LineRevenue so the
// engines can count what they exclude.
type OrderItem struct {
	ID              uint64
	OrderID         uint64
	ProductID       uint64
	Quantity        sql.NullInt64
	UnitPrice       decimal.NullDecimal
	DiscountPercent sql.NullFloat64
}

// LineRevenue returns quantity × unit_price × (1 − discount_percent/100).
// The second return is false for rows that cannot contribute revenue:
// missing or non-positive quantity, missing or negative unit price, or a
// discount outside [0,100]. Such rows contribute zero and are excluded from
// aggregates by the caller.
func (it OrderItem) LineRevenue() (decimal.Decimal, bool) {
	if !it.Quantity.Valid || it.Quantity.Int64 <= 0 {
		return decimal.Zero, false
	}
	if !it.UnitPrice.Valid || it.UnitPrice.Decimal.IsNegative() {
		return decimal.Zero, false
	}
	disc := 0.0
	if it.DiscountPercent.Valid {
		disc = it.DiscountPercent.Float64
	}
	if disc < 0 || disc > 100 {
		return decimal.Zero, false
	}
	qty := decimal.NewFromInt(it.Quantity.Int64)
	factor := decimal.NewFromFloat(1 - disc/100)
	return it.UnitPrice.Decimal.Mul(qty).Mul(factor), true
}

/*
COMPUTE → derived rows produced by the engines.
*/

// RetentionRow is one cell of the cohort retention matrix.
type RetentionRow struct {
	CohortMonth   time.Time // first day of the acquisition month, UTC
	PeriodNumber  int       // whole months since the cohort month
	Customers     int       // distinct customers active in the period
	CohortSize    int       // distinct customers at period 0
	RetentionRate sql.NullFloat64
}

// AffinityPair is one canonical product pair with its co-occurrence metrics.
// ProductA is always the smaller id.
type AffinityPair struct {
	ProductA   uint64
	ProductB   uint64
	PairCount  int
	Support    float64
	Confidence float64 // P(B | A)
	Lift       float64
}

// CLVRecord is the per-customer value estimate. Every customer gets one,
// including customers with no revenue-counting orders.
type CLVRecord struct {
	CustomerID      uint64
	HistoricRevenue decimal.Decimal
	OrderCount      int
	AvgOrderValue   decimal.Decimal
	TenureYears     float64
	ProjectedValue  decimal.Decimal
	LifetimeValue   decimal.Decimal
	FirstOrderDate  sql.NullTime
	LastOrderDate   sql.NullTime
}

// SeriesRow is one bucket of the sales time series. PeriodStart is a real
// timestamp (UTC midnight of the day, or of the first of the month) so the
// series sorts chronologically, never a formatted string.
type SeriesRow struct {
	PeriodStart   time.Time
	OrderCount    int
	Customers     int // distinct
	Revenue       decimal.Decimal
	AvgOrderValue sql.NullFloat64
	RollingAvg    sql.NullFloat64 // trailing-window mean of Revenue
	YTDRevenue    decimal.Decimal // resets at each calendar-year boundary
	Growth        sql.NullFloat64 // vs the previous period
	Anomaly       bool            // revenue more than 2σ from the series mean
}

/*
CONFIG → explicit per-run parameters, no process-wide state.
*/

// Params carries everything an engine invocation needs beyond the source
// rows. The thresholds are tunable; the defaults follow the reference
// material and are not load-bearing.
type Params struct {
	AsOf            time.Time // reference "now" for tenure, fixed for reproducibility
	MinPairCount    int       // affinity: minimum co-occurrence count
	MinConfidence   float64   // affinity: minimum confidence
	ProjectionYears float64   // clv: linear projection horizon
	MinTenureYears  float64   // clv: tenure floor
	RollingPeriods  int       // series: trailing window length in periods
}

// DefaultParams returns the reference defaults with the given as-of date.
func DefaultParams(asOf time.Time) Params {
	return Params{
		AsOf:            asOf,
		MinPairCount:    5,
		MinConfidence:   0.01,
		ProjectionYears: 2,
		MinTenureYears:  0.5,
		RollingPeriods:  7,
	}
}
