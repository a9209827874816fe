package evolve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion indicates malformed input to ParseVersion.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidMigrationVersion indicates a table declared a migration
	// keyed at or below its own introduction version.
	ErrInvalidMigrationVersion = errors.New("migration version not greater than table introduction version")

	// ErrDuplicateTable indicates a table name was declared twice in one schema.
	ErrDuplicateTable = errors.New("duplicate table name")

	// ErrDuplicateField indicates two fields of one table share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrNoFields indicates a table was declared without any fields.
	ErrNoFields = errors.New("table declared without fields")

	// ErrSchemaFrozen indicates a declaration was attempted after the schema
	// was handed to the planner or executor.
	ErrSchemaFrozen = errors.New("schema is frozen, declare tables before planning")

	// ErrNoTargetVersion indicates a versioned operation was requested on a
	// schema constructed without a target version.
	ErrNoTargetVersion = errors.New("schema has no target version")

	// ErrConnection indicates the database could not be reached or a
	// transaction could not begin or commit.
	ErrConnection = errors.New("database connection failure")
)

// StepError identifies the migration step that failed during Initialise.
// The whole transaction is rolled back when it is returned, so the persisted
// version is unchanged and a retry replans from the same starting point.
type StepError struct {
	Table   string
	Version Version
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("migration step for table %q at version %s failed: %v", e.Table, e.Version, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
