package repository

import (
	"context"
	"database/sql"
	"fmt"

	"restaurante/internal/domain"
	"restaurante/internal/infrastructure/database"
)

type SQLStatusLogRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLStatusLogRepository(db *sql.DB, dialect database.Dialect) *SQLStatusLogRepository {
	return &SQLStatusLogRepository{db: db, dialect: dialect}
}

func (r *SQLStatusLogRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.StatusLog) (int64, error) {
	query := `INSERT INTO order_status_log (order_id, from_status, to_status, changed_at) VALUES (?, ?, ?, ?)`

	id, err := r.dialect.InsertReturningID(ctx, tx, query, entry.OrderID, entry.FromStatus, entry.ToStatus, entry.ChangedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting status log: %w", err)
	}

	return id, nil
}

// ListByOrder returns the transitions of an order oldest first.
func (r *SQLStatusLogRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.StatusLog, error) {
	query := r.dialect.Rebind(`
		SELECT id, order_id, from_status, to_status, changed_at
		FROM order_status_log
		WHERE order_id = ?
		ORDER BY changed_at ASC, id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying status log: %w", err)
	}
	defer rows.Close()

	entries := []domain.StatusLog{}
	for rows.Next() {
		var e domain.StatusLog
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning status log: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status log: %w", err)
	}

	return entries, nil
}
