package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante/internal/domain"
	"restaurante/internal/errors"
	"restaurante/internal/infrastructure/database"
	"restaurante/internal/testutil"
)

// Unit Tests

func TestNewSQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewSQLOrderRepository(db, database.MySQL)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func newPendingOrder(customerID int64, dish string, notes *string, at time.Time) domain.Order {
	return domain.Order{
		CustomerID: customerID,
		DishName:   dish,
		Notes:      notes,
		Status:     domain.StatusPending,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestOrderRepository_InsertAndFindStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)
	ctx := context.Background()

	customerID := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	notes := "no onions"

	id, err := repo.Insert(ctx, newPendingOrder(customerID, "Tacos", &notes, time.Now().UTC()))
	require.NoError(t, err)
	assert.Positive(t, id)

	status, err := repo.FindStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrderRepository_Insert_UnknownCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)

	_, err := repo.Insert(context.Background(), newPendingOrder(999, "Tacos", nil, time.Now().UTC()))

	nfe, ok := errors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "customer not found", nfe.Message)
}

func TestOrderRepository_FindStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)

	status, err := repo.FindStatus(context.Background(), 9999)

	assert.Empty(t, status)
	nfe, ok := errors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "order not found", nfe.Message)

	exists, err := repo.Exists(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrderRepository_FindStatus_ReturnsRawValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)

	customerID := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	id := testutil.InsertOrderWithStatus(t, db, customerID, "Tacos", "cancelled", time.Now().UTC())

	status, err := repo.FindStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", status)
}

func TestOrderRepository_ListByCustomer_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)
	ctx := context.Background()

	ana := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	bob := testutil.InsertCustomer(t, db, "Bob", "bob@x.com", "555-2")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	notes := "extra salsa"
	_, err := repo.Insert(ctx, newPendingOrder(ana, "Tacos", nil, base))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newPendingOrder(ana, "Pozole", &notes, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newPendingOrder(bob, "Mole", nil, base.Add(2*time.Hour)))
	require.NoError(t, err)

	orders, err := repo.ListByCustomer(ctx, ana)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "Pozole", orders[0].DishName)
	require.NotNil(t, orders[0].Notes)
	assert.Equal(t, "extra salsa", *orders[0].Notes)
	assert.Equal(t, "Tacos", orders[1].DishName)
	assert.Nil(t, orders[1].Notes)
	assert.Equal(t, domain.StatusPending, orders[1].Status)
	assert.True(t, orders[0].CreatedAt.Equal(base.Add(time.Hour)))
}

func TestOrderRepository_ListByCustomer_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)

	orders, err := repo.ListByCustomer(context.Background(), 42)

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestOrderRepository_CompareAndSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)
	ctx := context.Background()

	customerID := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	id, err := repo.Insert(ctx, newPendingOrder(customerID, "Tacos", nil, time.Now().UTC()))
	require.NoError(t, err)

	tx, err := repo.BeginTx(ctx, nil)
	require.NoError(t, err)

	ok, err := repo.CompareAndSetStatus(ctx, tx, id, domain.StatusPending, domain.StatusPreparing, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)

	// The order no longer holds pending.
	ok, err = repo.CompareAndSetStatus(ctx, tx, id, domain.StatusPending, domain.StatusPreparing, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tx.Commit())

	status, err := repo.FindStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "preparing", status)
}

func TestOrderRepository_CompareAndSetStatus_Rollback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db, database.SQLite)
	ctx := context.Background()

	customerID := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	id, err := repo.Insert(ctx, newPendingOrder(customerID, "Tacos", nil, time.Now().UTC()))
	require.NoError(t, err)

	tx, err := repo.BeginTx(ctx, nil)
	require.NoError(t, err)
	ok, err := repo.CompareAndSetStatus(ctx, tx, id, domain.StatusPending, domain.StatusPreparing, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, tx.Rollback())

	status, err := repo.FindStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
}

func TestOrderRepository_MySQL(t *testing.T) {
	db := testutil.SetupMySQL(t)
	repo := NewSQLOrderRepository(db, database.MySQL)
	ctx := context.Background()

	customerID := testutil.InsertCustomer(t, db, "Ana", "ana@x.com", "555-1")
	id, err := repo.Insert(ctx, newPendingOrder(customerID, "Tacos", nil, time.Now().UTC()))
	require.NoError(t, err)

	status, err := repo.FindStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	_, err = repo.Insert(ctx, newPendingOrder(customerID+1000, "Tacos", nil, time.Now().UTC()))
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
