package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a record does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// isUniqueViolation reports whether err is a unique or primary key violation
// from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// Dialect selects placeholder style and catalog queries.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// ParseDatabaseURL maps a connection string onto a driver name, DSN and dialect.
// "sqlite://path", "file:path" and paths ending in .db select sqlite; anything
// else is handed to lib/pq.
func ParseDatabaseURL(url string) (driver, dsn string, dialect Dialect) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite", sqliteDSN(strings.TrimPrefix(url, "sqlite://")), SQLite
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"):
		return "sqlite", sqliteDSN(url), SQLite
	default:
		return "postgres", url, Postgres
	}
}

func sqliteDSN(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open opens and pings the connection pool for url.
func Open(url string) (*sql.DB, Dialect, error) {
	driver, dsn, dialect := ParseDatabaseURL(url)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == SQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under fan-out.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, dialect, nil
}

// Repository provides database operations
type Repository struct {
	store

	Incomes     *IncomeRepository
	Expenses    *ExpenseRepository
	Assets      *AssetRepository
	Liabilities *LiabilityRepository
	Goals       *GoalRepository
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	s := store{db: db, dialect: dialect}
	return &Repository{
		store:       s,
		Incomes:     &IncomeRepository{s},
		Expenses:    &ExpenseRepository{s},
		Assets:      &AssetRepository{s},
		Liabilities: &LiabilityRepository{s},
		Goals:       &GoalRepository{s},
	}
}

// Ping checks the pool is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// store is the shared query surface of every per-kind repository.
type store struct {
	db      *sql.DB
	dialect Dialect
}

// rebind rewrites ? placeholders into $n for postgres.
func (s store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (s store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// updateOwned applies set to the row (id, userID) of table.
func (s store) updateOwned(ctx context.Context, table, id, userID string, set *updateSet) error {
	if set.empty() {
		var found string
		err := s.queryRow(ctx, "SELECT id FROM "+table+" WHERE id = ? AND user_id = ?", id, userID).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to find %s row: %w", table, err)
		}
		return nil
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND user_id = ?", table, set.clause())
	res, err := s.exec(ctx, query, append(set.args, id, userID)...)
	if err != nil {
		return fmt.Errorf("failed to update %s row: %w", table, err)
	}
	return requireAffected(res)
}

// deleteOwned removes the row (id, userID) of table.
func (s store) deleteOwned(ctx context.Context, table, id, userID string) error {
	res, err := s.exec(ctx, "DELETE FROM "+table+" WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete %s row: %w", table, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}
