package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

// FindByID returns (nil, nil) when the customer does not exist; the caller
// decides whether absence is an error.
func (r *MySQLCustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name FROM customers WHERE id = ?`, id)

	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
