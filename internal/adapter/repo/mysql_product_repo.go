package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

// FindAllByID reads the catalog entries for the given ids. Unknown ids are
// simply absent from the result; the use case detects that by count.
func (r *MySQLProductRepo) FindAllByID(ctx context.Context, ids []string) ([]domain.CatalogEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, price_cents, stock_quantity
FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.UnitPriceCents, &e.StockQuantity); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Restock adds qty in place. The increment runs inside the database so it
// composes with concurrent order decrements without a read-modify-write race.
func (r *MySQLProductRepo) Restock(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET stock_quantity = stock_quantity + ?, updated_at = NOW()
WHERE id = ?`, qty, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("restock %s: %w", productID, domain.ErrProductNotFound)
	}
	return nil
}

func (r *MySQLProductRepo) UpdatePrice(ctx context.Context, productID string, priceCents int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET price_cents = ?, updated_at = NOW()
WHERE id = ?`, priceCents, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("update price %s: %w", productID, domain.ErrProductNotFound)
	}
	return nil
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
