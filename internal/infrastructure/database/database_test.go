package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurante/internal/config"
)

// Unit Tests

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("Postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = ParseDialect("mysql")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.DriverName())

	_, err = ParseDialect("oracle")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	query := `UPDATE orders SET status = ? WHERE id = ? AND status = ?`

	assert.Equal(t, query, MySQL.Rebind(query))
	assert.Equal(t, query, SQLite.Rebind(query))
	assert.Equal(t, `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`, Postgres.Rebind(query))
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", Name: "restaurante",
		SSLMode: "disable", Path: "/tmp/r.db",
	}

	mysqlDSN := MySQL.DSN(cfg)
	assert.Contains(t, mysqlDSN, "u:p@tcp(db:3306)/restaurante")
	assert.Contains(t, mysqlDSN, "parseTime=true")
	assert.NotContains(t, mysqlDSN, "tls=")

	cfg.Port = 5432
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=restaurante sslmode=disable", Postgres.DSN(cfg))

	assert.Contains(t, SQLite.DSN(cfg), "/tmp/r.db?")
	assert.Contains(t, SQLite.DSN(cfg), "foreign_keys(1)")
}

func TestDSN_MySQLTLS(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 3306, User: "u", Password: "p", Name: "r", SSLMode: "require"}

	assert.Contains(t, MySQL.DSN(cfg), "tls=skip-verify")
}

func TestErrorClassification_MySQL(t *testing.T) {
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsRetryable(&mysql.MySQLError{Number: 1213}))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1205})))
	assert.False(t, IsRetryable(&mysql.MySQLError{Number: 1062}))
}

func TestErrorClassification_Postgres(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestErrorClassification_Plain(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsRetryable(err))
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- comment\nCREATE TABLE a (id INT);\n\nCREATE TABLE b (id INT);\n")

	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, stmts)
}

// Integration Tests (SQLite)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:              filepath.Join(t.TempDir(), "test.db"),
		ConnectRetries:    1,
		ConnectRetryDelay: time.Millisecond,
	}

	db, err := NewConnection(context.Background(), SQLite, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestMigrate_SQLite_Idempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, SQLite, zap.NewNop()))
	require.NoError(t, Migrate(ctx, db, SQLite, zap.NewNop()))

	var versions int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 2, versions)

	for _, table := range []string{"customers", "orders", "order_status_log"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestInsertReturningID_AndConstraints_SQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, SQLite, zap.NewNop()))

	now := time.Now().UTC()
	insertCustomer := `INSERT INTO customers (name, email, phone, phone_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	id, err := SQLite.InsertReturningID(ctx, db, insertCustomer, "Ana", "ana@x.com", "555-1", "", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = SQLite.InsertReturningID(ctx, db, insertCustomer, "Ana 2", "ana@x.com", "555-2", "", now)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = SQLite.InsertReturningID(ctx, db,
		`INSERT INTO orders (customer_id, dish_name, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		999, "Tacos", "pending", now, now,
	)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestNewConnection_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DatabaseConfig{
		Path:              filepath.Join(t.TempDir(), "test.db"),
		ConnectRetries:    3,
		ConnectRetryDelay: time.Second,
	}

	_, err := NewConnection(ctx, SQLite, cfg, zap.NewNop())
	assert.Error(t, err)
}
