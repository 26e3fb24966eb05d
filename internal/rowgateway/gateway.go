package rowgateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// Gateway executes parameterized statements against the relational store.
type Gateway interface {
	// Query runs a statement that returns rows. An empty result is an empty,
	// non-nil slice.
	Query(ctx context.Context, template string, params ...any) ([]Row, error)
	// Exec runs a write statement and reports the number of affected rows.
	Exec(ctx context.Context, template string, params ...any) (int64, error)
}

// Options configures Open.
type Options struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string
	// DSN is the driver specific data source name.
	DSN string
	// MaxOpenConns caps the pool. Zero leaves database/sql unlimited.
	MaxOpenConns int
	// QueryTimeout bounds every statement when positive.
	QueryTimeout time.Duration
}

// DB is a Gateway backed by a database/sql connection pool. It is safe for
// concurrent use; each statement borrows a pooled connection and returns it
// before the call ends.
type DB struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

// Open connects to the store described by opts and checks the connection.
func Open(opts Options) (*DB, error) {
	switch opts.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	sqlDB, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(sqlDB, opts.Driver, opts.QueryTimeout), nil
}

// New wraps an already opened pool.
func New(sqlDB *sql.DB, driver string, timeout time.Duration) *DB {
	return &DB{db: sqlDB, driver: driver, timeout: timeout}
}

// Driver reports the driver name the gateway was built with.
func (g *DB) Driver() string { return g.driver }

// Close releases the pool.
func (g *DB) Close() error { return g.db.Close() }

// Query implements Gateway.
func (g *DB) Query(ctx context.Context, template string, params ...any) ([]Row, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	rows, err := g.db.QueryContext(ctx, g.rebind(template), params...)
	if err != nil {
		return nil, fail("query", err)
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fail("columns", err)
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fail("scan", err)
		}

		row := make(Row, len(types))
		for i, ct := range types {
			row[ct.Name()] = normalize(values[i], ct.DatabaseTypeName())
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("rows", err)
	}
	return out, nil
}

// Exec implements Gateway.
func (g *DB) Exec(ctx context.Context, template string, params ...any) (int64, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	res, err := g.db.ExecContext(ctx, g.rebind(template), params...)
	if err != nil {
		return 0, fail("exec", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fail("rows affected", err)
	}
	return n, nil
}

func (g *DB) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return ctx, func() {}
}

func (g *DB) rebind(template string) string {
	if g.driver != DriverPostgres {
		return template
	}
	return Rebind(template)
}

// Rebind rewrites '?' placeholders into PostgreSQL's $1, $2, ... form.
// Question marks inside single-quoted literals are left alone.
func Rebind(template string) string {
	var b strings.Builder
	b.Grow(len(template) + 8)

	n := 0
	quoted := false
	for _, r := range template {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == '?' && !quoted:
			n++
			fmt.Fprintf(&b, "$%d", n)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalize turns driver supplied text bytes into strings so rows encode
// as JSON text. Binary columns keep their bytes.
func normalize(v any, dbType string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	switch strings.ToUpper(dbType) {
	case "BLOB", "BYTEA":
		return b
	}
	return string(b)
}
