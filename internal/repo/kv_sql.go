package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Dialect selects the SQL flavour spoken by SQLKeyValueRepository.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

const queryTimeout = 3 * time.Second

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrInvalidTableName is returned when the configured table is not a plain identifier.
var ErrInvalidTableName = errors.New("invalid table name")

// SQLKeyValueRepository keeps key/value pairs in a two column table.
type SQLKeyValueRepository struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

func NewSQLKeyValueRepository(db *sql.DB, dialect Dialect, table string) (*SQLKeyValueRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	switch dialect {
	case DialectPostgres, DialectMySQL, DialectSQLite:
	default:
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect)
	}
	return &SQLKeyValueRepository{db: db, dialect: dialect, table: table}, nil
}

// EnsureSchema creates the backing table when it does not exist yet.
func (r *SQLKeyValueRepository) EnsureSchema(ctx context.Context) error {
	var query string
	switch r.dialect {
	case DialectMySQL:
		query = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (slot_key VARCHAR(255) NOT NULL PRIMARY KEY, slot_value LONGTEXT NOT NULL)`, r.table)
	default:
		query = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (slot_key TEXT NOT NULL PRIMARY KEY, slot_value TEXT NOT NULL)`, r.table)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT slot_value FROM %s WHERE slot_key = %s`, r.table, r.placeholder(1))
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLKeyValueRepository) Set(ctx context.Context, key, value string) error {
	var query string
	switch r.dialect {
	case DialectMySQL:
		query = fmt.Sprintf(`INSERT INTO %s (slot_key, slot_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value)`, r.table)
	default:
		query = fmt.Sprintf(`INSERT INTO %s (slot_key, slot_value) VALUES (%s, %s) ON CONFLICT (slot_key) DO UPDATE SET slot_value = excluded.slot_value`,
			r.table, r.placeholder(1), r.placeholder(2))
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *SQLKeyValueRepository) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slot_key = %s`, r.table, r.placeholder(1))
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *SQLKeyValueRepository) placeholder(n int) string {
	if r.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
