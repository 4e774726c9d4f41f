package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sales-analytics/pkg/models"
)

// Repository reads the four source tables with explicit column projection
// and predicates pushed into the query, so full tables are never dragged
// over the wire just to be filtered in memory.
type Repository struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewRepository(db *sql.DB, log logrus.FieldLogger) *Repository {
	return &Repository{db: db, log: log}
}

// OrderQuery narrows the orders read. Zero times mean unbounded; an empty
// status list means all statuses.
type OrderQuery struct {
	From     time.Time // inclusive
	To       time.Time // exclusive
	Statuses []models.OrderStatus
}

// Customers reads customer rows, optionally restricted to active ones.
func (r *Repository) Customers(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	q := `SELECT customer_id, customer_name, country, signup_date, is_active FROM customers`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Country, &c.SignupDate, &c.Active); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"table": "customers", "rows": len(out), "active_only": activeOnly}).Debug("read")
	return out, nil
}

// Orders reads order rows matching the query.
func (r *Repository) Orders(ctx context.Context, oq OrderQuery) ([]models.Order, error) {
	q := `SELECT order_id, customer_id, order_date, total_amount, discount_amount, status, payment_method FROM orders`
	var conds []string
	var args []any
	if !oq.From.IsZero() {
		conds = append(conds, "order_date >= ?")
		args = append(args, oq.From.UTC())
	}
	if !oq.To.IsZero() {
		conds = append(conds, "order_date < ?")
		args = append(args, oq.To.UTC())
	}
	if len(oq.Statuses) > 0 {
		placeholders := strings.Repeat("?,", len(oq.Statuses))
		conds = append(conds, "status IN ("+placeholders[:len(placeholders)-1]+")")
		for _, s := range oq.Statuses {
			args = append(args, string(s))
		}
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var (
			o        models.Order
			total    decimal.NullDecimal
			discount decimal.NullDecimal
			status   string
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &total, &discount, &status, &o.PaymentMethod); err != nil {
			return nil, err
		}
		// Null money columns contribute nothing rather than aborting the run.
		if total.Valid {
			o.TotalAmount = total.Decimal
		} else {
			o.TotalAmount = decimal.Zero
		}
		if discount.Valid {
			o.DiscountAmount = discount.Decimal
		} else {
			o.DiscountAmount = decimal.Zero
		}
		o.Status = models.OrderStatus(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"table": "orders", "rows": len(out)}).Debug("read")
	return out, nil
}

// OrderItems reads all order line items. Nullable value columns stay
// nullable; validity is the engines' call so exclusions stay countable.
func (r *Repository) OrderItems(ctx context.Context) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_item_id, order_id, product_id, quantity, unit_price, discount_percent FROM order_items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.DiscountPercent); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"table": "order_items", "rows": len(out)}).Debug("read")
	return out, nil
}

// Products reads product rows, optionally excluding discontinued ones.
func (r *Repository) Products(ctx context.Context, excludeDiscontinued bool) ([]models.Product, error) {
	q := `SELECT product_id, product_name, category, subcategory, price, cost, stock_quantity, is_discontinued FROM products`
	if excludeDiscontinued {
		q += ` WHERE is_discontinued = 0`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Subcategory, &p.Price, &p.Cost, &p.StockQuantity, &p.Discontinued); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"table": "products", "rows": len(out), "exclude_discontinued": excludeDiscontinued}).Debug("read")
	return out, nil
}
