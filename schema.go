package evolve

import (
	"fmt"
)

// tableMigration pairs one version with the steps a table declared for it.
// A slice rather than a map so declaration order is preserved.
type tableMigration struct {
	version Version
	steps   []Step
}

// Table is the immutable descriptor of one declared table: its columns,
// the version at which it becomes active and the per-version migration
// steps that evolve it afterwards.
type Table struct {
	Name   string
	Fields []Field

	// Since is the version this table first appears at. The planner
	// synthesizes its CREATE TABLE exactly once, at Since.
	Since Version

	migrations []tableMigration
}

// StepsAt returns the migration steps this table declared for v, in their
// declared order, or nil.
func (t *Table) StepsAt(v Version) []Step {
	for _, m := range t.migrations {
		if m.version.Equal(v) {
			return m.steps
		}
	}
	return nil
}

// MigrationVersions returns the versions this table declares migrations
// for, in declaration order.
func (t *Table) MigrationVersions() []Version {
	out := make([]Version, len(t.migrations))
	for i, m := range t.migrations {
		out[i] = m.version
	}
	return out
}

// TableOption configures one Declare call.
type TableOption func(*Table) error

// Since sets the version at which the table is introduced. Omitted, the
// table exists from the schema's inception (the zero version).
func Since(v Version) TableOption {
	return func(t *Table) error {
		t.Since = v
		return nil
	}
}

// Migrate attaches migration steps to run when the schema crosses v.
// Multiple Migrate options for distinct versions may be given; steps for
// one version run in the order passed here.
func Migrate(v Version, steps ...Step) TableOption {
	return func(t *Table) error {
		t.migrations = append(t.migrations, tableMigration{version: v, steps: steps})
		return nil
	}
}

// Schema is the registry of declared tables. Build it during startup with
// Declare, then hand it to an Evolver; the first plan freezes it and any
// later declaration fails with ErrSchemaFrozen.
//
// A schema built with NewSchema is static: every table is assumed to exist
// from the start and version planning does not apply. NewVersionedSchema
// enables the full since/migrations model against a target version.
type Schema struct {
	tables    []*Table
	target    Version
	versioned bool
	frozen    bool
}

// NewSchema creates a static schema with no version tracking.
func NewSchema() *Schema {
	return &Schema{}
}

// NewVersionedSchema creates a schema whose declared tables evolve up to
// target, the version the current code expects.
func NewVersionedSchema(target Version) *Schema {
	return &Schema{target: target, versioned: true}
}

// Target returns the schema's target version (zero for static schemas).
func (s *Schema) Target() Version { return s.target }

// Versioned reports whether the schema tracks versions.
func (s *Schema) Versioned() bool { return s.versioned }

// Tables returns the declared tables in registration order.
func (s *Schema) Tables() []*Table { return s.tables }

// freeze marks the declaration phase over. Idempotent.
func (s *Schema) freeze() { s.frozen = true }

// Declare registers a table and returns one Handle per field, in field
// order. Registration order is significant: the planner uses it as the
// stable tie-break for work keyed at the same version, so declare tables
// in dependency order when migrations reference each other.
//
// Declaration fails fast on a duplicate table name, duplicate field names,
// an empty field list, or a migration keyed at or below Since.
func (s *Schema) Declare(name string, fields []Field, opts ...TableOption) ([]Handle, error) {
	if s.frozen {
		return nil, fmt.Errorf("%w: table %q", ErrSchemaFrozen, name)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: table %q", ErrNoFields, name)
	}
	for _, t := range s.tables {
		if t.Name == name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTable, name)
		}
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q in table %q", ErrDuplicateField, f.Name, name)
		}
		seen[f.Name] = struct{}{}
	}

	tbl := &Table{
		Name:   name,
		Fields: append([]Field(nil), fields...),
	}
	for _, opt := range opts {
		if err := opt(tbl); err != nil {
			return nil, err
		}
	}
	for _, m := range tbl.migrations {
		if m.version.Compare(tbl.Since) <= 0 {
			return nil, fmt.Errorf("%w: table %q declares steps at %s, introduced at %s",
				ErrInvalidMigrationVersion, name, m.version, tbl.Since)
		}
	}

	s.tables = append(s.tables, tbl)

	handles := make([]Handle, len(tbl.Fields))
	for i := range tbl.Fields {
		handles[i] = Handle{table: tbl, field: &tbl.Fields[i]}
	}
	return handles, nil
}

// MustDeclare is Declare that panics on error, for declaration code where
// an invariant violation should abort startup.
func (s *Schema) MustDeclare(name string, fields []Field, opts ...TableOption) []Handle {
	hs, err := s.Declare(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return hs
}
