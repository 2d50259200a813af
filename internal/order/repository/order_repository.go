package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/database"
)

type SQLOrderRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLOrderRepository(db *sql.DB, dialect database.Dialect) *SQLOrderRepository {
	return &SQLOrderRepository{db: db, dialect: dialect}
}

// BeginTx lets the repository act as the transaction manager of the
// transition service.
func (r *SQLOrderRepository) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, opts)
}

func (r *SQLOrderRepository) Insert(ctx context.Context, o domain.Order) (int64, error) {
	query := `INSERT INTO orders (customer_id, dish_name, notes, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	id, err := r.dialect.InsertReturningID(ctx, r.db, query,
		o.CustomerID, o.DishName, o.Notes, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("customer not found")
		}
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	return id, nil
}

// FindStatus returns the stored status exactly as persisted, so callers can
// tell an out-of-enum value apart from a missing order.
func (r *SQLOrderRepository) FindStatus(ctx context.Context, id int64) (string, error) {
	query := r.dialect.Rebind(`SELECT status FROM orders WHERE id = ?`)

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NewNotFoundError("order not found")
	}
	if err != nil {
		return "", fmt.Errorf("querying order status: %w", err)
	}

	return status, nil
}

func (r *SQLOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM orders WHERE id = ?`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("checking order id: %w", err)
	}

	return count > 0, nil
}

// ListByCustomer returns the customer's orders newest first. The result is
// never nil.
func (r *SQLOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	query := r.dialect.Rebind(`
		SELECT id, customer_id, dish_name, notes, status, created_at, updated_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC
	`)

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by customer: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var (
			o     domain.Order
			notes sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.DishName, &notes, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if notes.Valid {
			o.Notes = &notes.String
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

// CompareAndSetStatus moves the order from one status to the next only if it
// still holds from. It reports false when no row matched.
func (r *SQLOrderRepository) CompareAndSetStatus(ctx context.Context, tx *sql.Tx, id int64, from, to domain.OrderStatus, now time.Time) (bool, error) {
	query := r.dialect.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`)

	result, err := tx.ExecContext(ctx, query, to, now, id, from)
	if err != nil {
		return false, fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
