package evolve

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Client is the dialect boundary: it owns identifier quoting, CREATE TABLE
// rendering from a table descriptor, and the persisted version store.
// Everything else the executor does is dialect-independent SQL execution.
type Client interface {
	// HasVersionStore reports whether the version store table exists.
	HasVersionStore(ctx context.Context) (bool, error)

	// EnsureVersionStore creates the version store and seeds it with the
	// zero version if it does not exist. Idempotent; re-running against an
	// initialized store is a no-op.
	EnsureVersionStore(ctx context.Context) error

	// ReadVersion returns the persisted version, or the zero version when
	// the store does not exist yet.
	ReadVersion(ctx context.Context) (Version, error)

	// WriteVersion overwrites the persisted version inside tx.
	WriteVersion(ctx context.Context, tx *sql.Tx, v Version) error

	// BeginTx opens the transaction the migration steps run in.
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// QuoteIdent quotes a table or column name for this dialect.
	QuoteIdent(name string) string

	// CreateTableSQL renders the CREATE TABLE statement for a descriptor.
	CreateTableSQL(t *Table, ifNotExists bool) string
}

// NewClient creates a Client for the configured driver.
func NewClient(cfg Config, db *sql.DB) (Client, error) {
	switch strings.ToLower(cfg.Driver) {
	case "pg", "postgres":
		return newPostgresClient(cfg, db), nil
	case "sqlite3", "sqlite":
		return newSqlite3Client(cfg, db), nil
	case "mysql":
		return newMysqlClient(cfg, db), nil
	default:
		return nil, fmt.Errorf("db driver %q not supported, must be one of: pg, sqlite3, mysql", cfg.Driver)
	}
}

// baseClient carries the dialect-independent logic. The varying pieces are
// function pointers set by each concrete client's constructor.
type baseClient struct {
	cfg Config
	db  *sql.DB

	// quoteIdentFn quotes one identifier.
	quoteIdentFn func(name string) string

	// columnTypeFn maps a scalar type tag to the dialect column type.
	columnTypeFn func(t ScalarType) string

	// autoPrimaryKeyFn renders the full type-and-constraint clause of an
	// auto-incrementing primary key column of the given scalar type.
	autoPrimaryKeyFn func(t ScalarType) string

	// placeholderFn renders the i-th (1-based) bind placeholder.
	placeholderFn func(i int) string

	// hasStoreSqlFn returns a query that yields at least one row iff the
	// version store table exists.
	hasStoreSqlFn func() string
}

func (c *baseClient) QuoteIdent(name string) string {
	return c.quoteIdentFn(name)
}

func (c *baseClient) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrConnection, err)
	}
	return tx, nil
}

func (c *baseClient) HasVersionStore(ctx context.Context) (bool, error) {
	rows, err := c.db.QueryContext(ctx, c.hasStoreSqlFn())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer rows.Close()
	if rows.Next() {
		return true, nil
	}
	return false, rows.Err()
}

func (c *baseClient) EnsureVersionStore(ctx context.Context) error {
	has, err := c.HasVersionStore(ctx)
	if err != nil {
		return err
	}
	qt := c.quoteIdentFn(c.cfg.VersionTable)
	if !has {
		ddl := fmt.Sprintf("CREATE TABLE %s (version %s NOT NULL)", qt, c.columnTypeFn(TypeText))
		if _, err := c.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: create version store: %v", ErrConnection, err)
		}
	}

	// Seed the single row on first creation; also repairs a store that was
	// created but never seeded.
	var n int
	row := c.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", qt))
	if err := row.Scan(&n); err != nil {
		return fmt.Errorf("%w: read version store: %v", ErrConnection, err)
	}
	if n == 0 {
		ins := fmt.Sprintf("INSERT INTO %s (version) VALUES (%s)", qt, c.placeholderFn(1))
		if _, err := c.db.ExecContext(ctx, ins, Version(nil).String()); err != nil {
			return fmt.Errorf("%w: seed version store: %v", ErrConnection, err)
		}
	}
	return nil
}

func (c *baseClient) ReadVersion(ctx context.Context) (Version, error) {
	has, err := c.HasVersionStore(ctx)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	qt := c.quoteIdentFn(c.cfg.VersionTable)
	var raw string
	row := c.db.QueryRowContext(ctx, fmt.Sprintf("SELECT version FROM %s LIMIT 1", qt))
	switch err := row.Scan(&raw); err {
	case nil:
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: read version: %v", ErrConnection, err)
	}
	return ParseVersion(raw)
}

func (c *baseClient) WriteVersion(ctx context.Context, tx *sql.Tx, v Version) error {
	qt := c.quoteIdentFn(c.cfg.VersionTable)
	upd := fmt.Sprintf("UPDATE %s SET version = %s", qt, c.placeholderFn(1))
	if _, err := tx.ExecContext(ctx, upd, v.String()); err != nil {
		return fmt.Errorf("%w: write version: %v", ErrConnection, err)
	}
	return nil
}

// CreateTableSQL renders the table's DDL from its field descriptors. Named
// primary keys become a table-level constraint; everything else renders
// inline on the column.
func (c *baseClient) CreateTableSQL(t *Table, ifNotExists bool) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(c.quoteIdentFn(t.Name))
	b.WriteString(" (")

	var tableConstraints []string
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.quoteIdentFn(f.Name))
		b.WriteByte(' ')
		b.WriteString(c.columnDef(t, f, &tableConstraints))
	}
	for _, tc := range tableConstraints {
		b.WriteString(", ")
		b.WriteString(tc)
	}
	b.WriteByte(')')
	return b.String()
}

// columnDef renders the type-and-constraints part of one column.
func (c *baseClient) columnDef(t *Table, f Field, tableConstraints *[]string) string {
	var parts []string
	typed := false
	for _, cons := range f.Constraints {
		switch cons.kind {
		case constraintPrimaryKey:
			switch {
			case cons.auto:
				parts = append(parts, c.autoPrimaryKeyFn(f.Type))
				typed = true
			case cons.name != "":
				*tableConstraints = append(*tableConstraints,
					fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)",
						c.quoteIdentFn(cons.name), c.quoteIdentFn(f.Name)))
			default:
				parts = append(parts, "PRIMARY KEY")
			}
		case constraintNotNull:
			parts = append(parts, "NOT NULL")
		case constraintUnique:
			parts = append(parts, "UNIQUE")
		case constraintDefault:
			parts = append(parts, "DEFAULT "+cons.expr)
		case constraintRaw:
			parts = append(parts, cons.expr)
		}
	}
	if !typed {
		parts = append([]string{c.columnTypeFn(f.Type)}, parts...)
	}
	return strings.Join(parts, " ")
}
