package models

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func nDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func nFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestLineRevenue(t *testing.T) {
	tests := []struct {
		name  string
		item  OrderItem
		want  string
		valid bool
	}{
		{
			// The discount is a percentage: 2 × 50 × 0.9, not 2 × 50 × (1−10).
			name:  "discount applied as percent",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("50"), DiscountPercent: nFloat(10)},
			want:  "90",
			valid: true,
		},
		{
			name:  "no discount column means full price",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("50")},
			want:  "100",
			valid: true,
		},
		{
			name:  "zero quantity contributes nothing",
			item:  OrderItem{Quantity: nInt(0), UnitPrice: nDec("50")},
			valid: false,
		},
		{
			name:  "negative quantity contributes nothing",
			item:  OrderItem{Quantity: nInt(-3), UnitPrice: nDec("50")},
			valid: false,
		},
		{
			name:  "null quantity contributes nothing",
			item:  OrderItem{UnitPrice: nDec("50")},
			valid: false,
		},
		{
			name:  "null unit price contributes nothing",
			item:  OrderItem{Quantity: nInt(2)},
			valid: false,
		},
		{
			name:  "negative unit price contributes nothing",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("-1")},
			valid: false,
		},
		{
			name:  "discount above 100 is rejected",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("50"), DiscountPercent: nFloat(110)},
			valid: false,
		},
		{
			name:  "negative discount is rejected",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("50"), DiscountPercent: nFloat(-5)},
			valid: false,
		},
		{
			name:  "full discount yields zero revenue but stays valid",
			item:  OrderItem{Quantity: nInt(2), UnitPrice: nDec("50"), DiscountPercent: nFloat(100)},
			want:  "0",
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.item.LineRevenue()
			require.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestOrderStatusRevenueCounting(t *testing.T) {
	assert.True(t, StatusShipped.CountsTowardRevenue())
	assert.True(t, StatusDelivered.CountsTowardRevenue())
	assert.False(t, StatusPending.CountsTowardRevenue())
	assert.False(t, StatusProcessing.CountsTowardRevenue())
	assert.False(t, StatusCancelled.CountsTowardRevenue())
	assert.False(t, StatusReturned.CountsTowardRevenue())
}
