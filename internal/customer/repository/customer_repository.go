package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/database"
)

type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

const customerColumns = `id, name, email, phone, phone_hash, created_at`

func (r *SQLRepository) Create(ctx context.Context, c domain.Customer) (int64, error) {
	query := `INSERT INTO customers (name, email, phone, phone_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	id, err := r.dialect.InsertReturningID(ctx, r.db, query, c.Name, c.Email, c.Phone, c.PhoneHash, c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("email already registered")
		}
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM customers WHERE email = ?`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, fmt.Errorf("checking customer email: %w", err)
	}

	return count > 0, nil
}

func (r *SQLRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM customers WHERE id = ?`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("checking customer id: %w", err)
	}

	return count > 0, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := r.dialect.Rebind(`SELECT ` + customerColumns + ` FROM customers WHERE email = ?`)

	return r.findOne(ctx, query, email)
}

func (r *SQLRepository) FindByEmailAndPhone(ctx context.Context, email, phone string) (*domain.Customer, error) {
	query := r.dialect.Rebind(`SELECT ` + customerColumns + ` FROM customers WHERE email = ? AND phone = ?`)

	return r.findOne(ctx, query, email, phone)
}

func (r *SQLRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PhoneHash, &c.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer: %w", err)
	}

	return &c, nil
}
