package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create writes the order, its line items, and every stock decrement in one
// transaction. The validation snapshot is treated as advisory: each
// decrement is guarded by `stock_quantity >= ordered` against live stock, so
// of two racing placements over the same product at most the covered one
// commits. Any guard failure rolls everything back.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order, deltas []domain.StockDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id, customer_id, total_cents, created_at)
VALUES (?,?,?,?)`, o.ID, o.CustomerID, o.TotalCents(), o.CreatedAt); err != nil {
		return err
	}

	for _, li := range o.LineItems {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, unit_price_cents, quantity)
VALUES (?,?,?,?)`, o.ID, li.ProductID, li.UnitPriceCents, li.Quantity); err != nil {
			return err
		}
	}

	for _, d := range deltas {
		res, err := tx.ExecContext(ctx, `
UPDATE products
SET stock_quantity = stock_quantity - ?, updated_at = NOW()
WHERE id = ? AND stock_quantity >= ?`, d.Ordered, d.ProductID, d.Ordered)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// Stock moved under us (or the product vanished). Re-read
			// for the diagnostic count; the rollback undoes the rest.
			var available int
			_ = tx.QueryRowContext(ctx, `
SELECT stock_quantity FROM products WHERE id = ?`, d.ProductID).Scan(&available)
			return &domain.StockError{ProductID: d.ProductID, Available: available}
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, customer_id, created_at FROM orders WHERE id = ?`, id)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT product_id, unit_price_cents, quantity
FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var li domain.OrderLineItem
		if err := rows.Scan(&li.ProductID, &li.UnitPriceCents, &li.Quantity); err != nil {
			return nil, err
		}
		o.LineItems = append(o.LineItems, li)
	}
	return &o, rows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
