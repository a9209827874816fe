package evolve

import (
	"database/sql"
	"fmt"
)

// sqlite3Client implements Client for SQLite.
type sqlite3Client struct {
	baseClient
}

func newSqlite3Client(cfg Config, db *sql.DB) Client {
	c := &sqlite3Client{baseClient: baseClient{cfg: cfg, db: db}}
	c.quoteIdentFn = func(name string) string { return `"` + name + `"` }
	c.columnTypeFn = sqliteColumnType
	c.autoPrimaryKeyFn = func(ScalarType) string {
		// SQLite ties auto-increment to the INTEGER rowid alias, whatever
		// the declared scalar width.
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	c.placeholderFn = func(int) string { return "?" }
	c.hasStoreSqlFn = func() string {
		return fmt.Sprintf(`
      SELECT name AS column_name
      FROM pragma_table_info('%s');
    `, cfg.VersionTable)
	}
	return c
}

func sqliteColumnType(t ScalarType) string {
	switch t {
	case TypeInt, TypeBigInt, TypeBool:
		return "INTEGER"
	case TypeFloat:
		return "REAL"
	case TypeBlob:
		return "BLOB"
	case TypeTimestamp:
		// SQLite has no dedicated timestamp type so TEXT is used.
		return "TEXT"
	default:
		return "TEXT"
	}
}
