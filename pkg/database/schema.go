package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// requiredColumns is the source-table contract the readers project from.
var requiredColumns = map[string][]string{
	"customers":   {"customer_id", "customer_name", "country", "signup_date", "is_active"},
	"products":    {"product_id", "product_name", "category", "subcategory", "price", "cost", "stock_quantity", "is_discontinued"},
	"orders":      {"order_id", "customer_id", "order_date", "total_amount", "discount_amount", "status", "payment_method"},
	"order_items": {"order_item_id", "order_id", "product_id", "quantity", "unit_price", "discount_percent"},
}

// CheckSchema verifies that the four source tables expose every column the
// readers depend on. Any missing column is fatal: the pipeline refuses to
// run instead of producing silently wrong output mid-computation.
func CheckSchema(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `
		SELECT TABLE_NAME, COLUMN_NAME
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name IN ('customers', 'products', 'orders', 'order_items')`)
	if err != nil {
		return fmt.Errorf("read information_schema: %w", err)
	}
	defer rows.Close()

	have := make(map[string]map[string]bool)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		table = strings.ToLower(table)
		if have[table] == nil {
			have[table] = make(map[string]bool)
		}
		have[table][strings.ToLower(column)] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tables := make([]string, 0, len(requiredColumns))
	for t := range requiredColumns {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var missing []string
	for _, t := range tables {
		for _, col := range requiredColumns[t] {
			if !have[t][col] {
				missing = append(missing, t+"."+col)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema contract violated, missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
