package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"restaurante/internal/config"
	"restaurante/internal/infrastructure/database"
)

// SetupTestDB returns a migrated SQLite database in a temp directory. It is
// closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:              filepath.Join(t.TempDir(), "restaurante_test.db"),
		ConnectRetries:    1,
		ConnectRetryDelay: time.Millisecond,
	}

	db, err := database.NewConnection(context.Background(), database.SQLite, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db, database.SQLite, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupMySQL connects to the MySQL server named by TEST_MYSQL_DSN, migrates it
// and empties its tables. The test is skipped when the variable is unset or
// the server does not answer.
func SetupMySQL(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := database.Migrate(context.Background(), db, database.MySQL, zap.NewNop()); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	CleanupTables(t, db)
	t.Cleanup(func() {
		CleanupTables(t, db)
		db.Close()
	})

	return db
}

// CleanupTables deletes every row, children first.
func CleanupTables(t *testing.T, db *sql.DB) {
	tables := []string{"order_status_log", "orders", "customers"}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// InsertCustomer adds a customer row directly and returns its id.
func InsertCustomer(t *testing.T, db *sql.DB, name, email, phone string) int64 {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO customers (name, email, phone, phone_hash, created_at) VALUES (?, ?, ?, '', ?)`,
		name, email, phone, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("failed to insert customer: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read customer id: %v", err)
	}
	return id
}

// InsertOrderWithStatus adds an order row with an arbitrary raw status string.
func InsertOrderWithStatus(t *testing.T, db *sql.DB, customerID int64, dish, status string, createdAt time.Time) int64 {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO orders (customer_id, dish_name, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		customerID, dish, status, createdAt, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to insert order: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read order id: %v", err)
	}
	return id
}
