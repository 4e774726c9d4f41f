package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/pkg/models"
)

func order(id, customer uint64, date string, amount string) models.Order {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Order{
		ID:          id,
		CustomerID:  customer,
		OrderDate:   d.UTC(),
		TotalAmount: decimal.RequireFromString(amount),
		Status:      models.StatusDelivered,
	}
}

func TestCohortRetention_EarliestOrderDefinesCohort(t *testing.T) {
	rows, qual := CohortRetention([]models.Order{
		order(1, 1, "2023-01-15", "100"),
		order(2, 1, "2023-03-10", "50"),
	})

	require.Len(t, rows, 2)
	jan := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, rows[0].CohortMonth.Equal(jan))
	assert.Equal(t, 0, rows[0].PeriodNumber)
	assert.Equal(t, 1, rows[0].Customers)
	require.True(t, rows[0].RetentionRate.Valid)
	assert.Equal(t, 1.0, rows[0].RetentionRate.Float64)

	// The March order lands in the January cohort at period 2, never in a
	// cohort of its own.
	assert.True(t, rows[1].CohortMonth.Equal(jan))
	assert.Equal(t, 2, rows[1].PeriodNumber)
	assert.Equal(t, 1, rows[1].Customers)

	assert.Equal(t, 2, qual.RowsRead)
	assert.Equal(t, 0, qual.RowsExcluded)
}

func TestCohortRetention_DistinctCustomersNotOrders(t *testing.T) {
	// Three orders from one customer in the same month must count once.
	rows, _ := CohortRetention([]models.Order{
		order(1, 7, "2023-05-02", "10"),
		order(2, 7, "2023-05-12", "10"),
		order(3, 7, "2023-05-29", "10"),
	})
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Customers)
	assert.Equal(t, 1, rows[0].CohortSize)
}

func TestCohortRetention_PeriodZeroIsAlwaysFull(t *testing.T) {
	rows, _ := CohortRetention([]models.Order{
		order(1, 1, "2023-01-05", "10"),
		order(2, 2, "2023-01-20", "10"),
		order(3, 3, "2023-02-03", "10"),
		order(4, 1, "2023-02-14", "10"),
		order(5, 3, "2023-04-01", "10"),
	})

	for _, r := range rows {
		if r.PeriodNumber == 0 {
			require.True(t, r.RetentionRate.Valid)
			assert.Equal(t, 1.0, r.RetentionRate.Float64, "cohort %s", r.CohortMonth)
			assert.Equal(t, r.CohortSize, r.Customers)
		}
	}
}

func TestCohortRetention_RetentionRateAgainstPeriodZero(t *testing.T) {
	// Two customers start in January, one returns in February.
	rows, _ := CohortRetention([]models.Order{
		order(1, 1, "2023-01-05", "10"),
		order(2, 2, "2023-01-20", "10"),
		order(3, 1, "2023-02-10", "10"),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].CohortSize)
	require.True(t, rows[1].RetentionRate.Valid)
	assert.Equal(t, 0.5, rows[1].RetentionRate.Float64)
}

func TestCohortRetention_CustomerBelongsToOneCohort(t *testing.T) {
	// Customer 2 first orders in February; their later orders must never
	// open or join a second cohort.
	rows, _ := CohortRetention([]models.Order{
		order(1, 1, "2023-01-05", "10"),
		order(2, 2, "2023-02-08", "10"),
		order(3, 2, "2023-06-08", "10"),
	})

	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	cohorts := map[time.Time]bool{}
	for _, r := range rows {
		cohorts[r.CohortMonth] = true
	}
	assert.Len(t, cohorts, 2)
	// June activity shows up as period 4 of the February cohort.
	var found bool
	for _, r := range rows {
		if r.CohortMonth.Equal(feb) && r.PeriodNumber == 4 {
			found = true
			assert.Equal(t, 1, r.Customers)
		}
	}
	assert.True(t, found)
}

func TestCohortRetention_ExcludesUnusableRows(t *testing.T) {
	bad := order(9, 0, "2023-01-05", "10") // no customer
	rows, qual := CohortRetention([]models.Order{
		order(1, 1, "2023-01-05", "10"),
		bad,
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, qual.RowsRead)
	assert.Equal(t, 1, qual.RowsExcluded)
	assert.Equal(t, 1, qual.Reasons["missing customer id or order date"])
}

func TestCohortRetention_EmptyInput(t *testing.T) {
	rows, qual := CohortRetention(nil)
	assert.Empty(t, rows)
	assert.Equal(t, 0, qual.RowsRead)
}

func TestCohortRetention_Idempotent(t *testing.T) {
	orders := []models.Order{
		order(1, 1, "2023-01-05", "10"),
		order(2, 2, "2023-03-20", "10"),
		order(3, 1, "2023-04-10", "10"),
		order(4, 3, "2023-04-11", "10"),
	}
	first, q1 := CohortRetention(orders)
	second, q2 := CohortRetention(orders)
	require.Equal(t, first, second)
	require.Equal(t, q1, q2)
}
