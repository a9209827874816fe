package evolve

import (
	"database/sql"
	"fmt"
)

// postgresClient implements Client for PostgreSQL.
type postgresClient struct {
	baseClient
}

func newPostgresClient(cfg Config, db *sql.DB) Client {
	c := &postgresClient{baseClient: baseClient{cfg: cfg, db: db}}
	c.quoteIdentFn = func(name string) string { return `"` + name + `"` }
	c.columnTypeFn = pgColumnType
	c.autoPrimaryKeyFn = func(t ScalarType) string {
		if t == TypeBigInt {
			return "BIGSERIAL PRIMARY KEY"
		}
		return "SERIAL PRIMARY KEY"
	}
	c.placeholderFn = func(i int) string { return fmt.Sprintf("$%d", i) }
	c.hasStoreSqlFn = func() string {
		return fmt.Sprintf(`
      SELECT column_name
      FROM information_schema.columns
      WHERE table_schema = current_schema() AND table_name = '%s';
    `, cfg.VersionTable)
	}
	return c
}

func pgColumnType(t ScalarType) string {
	switch t {
	case TypeInt:
		return "INTEGER"
	case TypeBigInt:
		return "BIGINT"
	case TypeFloat:
		return "DOUBLE PRECISION"
	case TypeBool:
		return "BOOLEAN"
	case TypeBlob:
		return "BYTEA"
	case TypeTimestamp:
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}
