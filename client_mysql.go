package evolve

import (
	"database/sql"
	"fmt"
)

// mysqlClient implements Client for MySQL and MariaDB.
type mysqlClient struct {
	baseClient
}

func newMysqlClient(cfg Config, db *sql.DB) Client {
	c := &mysqlClient{baseClient: baseClient{cfg: cfg, db: db}}
	c.quoteIdentFn = func(name string) string { return "`" + name + "`" }
	c.columnTypeFn = mysqlColumnType
	c.autoPrimaryKeyFn = func(t ScalarType) string {
		return mysqlColumnType(t) + " NOT NULL AUTO_INCREMENT PRIMARY KEY"
	}
	c.placeholderFn = func(int) string { return "?" }
	c.hasStoreSqlFn = func() string {
		return fmt.Sprintf(`
      SELECT column_name
      FROM information_schema.columns
      WHERE table_schema = DATABASE() AND table_name = '%s';
    `, cfg.VersionTable)
	}
	return c
}

func mysqlColumnType(t ScalarType) string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeBigInt:
		return "BIGINT"
	case TypeFloat:
		return "DOUBLE"
	case TypeBool:
		return "TINYINT(1)"
	case TypeBlob:
		return "BLOB"
	case TypeTimestamp:
		return "DATETIME"
	default:
		return "TEXT"
	}
}
