package evolve

// ScalarType tags the storage type of one column. The dialect clients map
// each tag to the concrete column type of their database.
type ScalarType int

const (
	TypeInt ScalarType = iota
	TypeBigInt
	TypeFloat
	TypeBool
	TypeText
	TypeBlob
	TypeTimestamp
)

// String returns the tag name used in logs and test failures.
func (t ScalarType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBigInt:
		return "bigint"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	case TypeTimestamp:
		return "timestamp"
	}
	return "unknown"
}

type constraintKind int

const (
	constraintPrimaryKey constraintKind = iota
	constraintNotNull
	constraintUnique
	constraintDefault
	constraintRaw
)

// Constraint is a column constraint forwarded to DDL generation. Primary
// keys get dialect-aware rendering; the remaining kinds are emitted as
// opaque SQL fragments.
type Constraint struct {
	kind constraintKind

	// auto marks an auto-incrementing primary key.
	auto bool

	// name is the optional constraint name for primary keys.
	name string

	// expr holds the default expression or the raw fragment.
	expr string
}

// PrimaryKey marks a column as the table's primary key.
func PrimaryKey() Constraint { return Constraint{kind: constraintPrimaryKey} }

// AutoPrimaryKey marks a column as an auto-incrementing primary key.
func AutoPrimaryKey() Constraint { return Constraint{kind: constraintPrimaryKey, auto: true} }

// NamedPrimaryKey marks a column as the primary key under an explicit
// constraint name.
func NamedPrimaryKey(name string) Constraint {
	return Constraint{kind: constraintPrimaryKey, name: name}
}

// NotNull forbids NULL values in the column.
func NotNull() Constraint { return Constraint{kind: constraintNotNull} }

// Unique adds a uniqueness constraint on the column.
func Unique() Constraint { return Constraint{kind: constraintUnique} }

// Default sets the column's default to the given SQL expression. The
// expression is emitted verbatim.
func Default(expr string) Constraint { return Constraint{kind: constraintDefault, expr: expr} }

// Raw appends an arbitrary SQL fragment to the column definition, for
// dialect features the tagged constraints do not cover.
func Raw(fragment string) Constraint { return Constraint{kind: constraintRaw, expr: fragment} }

// Field describes one column of a table: its name, scalar type and
// constraints. Fields are immutable once the declaring call returns.
type Field struct {
	Name        string
	Type        ScalarType
	Constraints []Constraint
}

// Column builds a Field descriptor.
func Column(name string, t ScalarType, cs ...Constraint) Field {
	return Field{Name: name, Type: t, Constraints: cs}
}

// Handle is the typed reference callers keep for a declared column. It is
// a plain value object pairing the owning table with the field descriptor,
// safe to copy and share; query builders consume it by name.
type Handle struct {
	table *Table
	field *Field
}

// Name returns the column name.
func (h Handle) Name() string { return h.field.Name }

// Table returns the owning table's name.
func (h Handle) Table() string { return h.table.Name }

// Type returns the column's scalar type tag.
func (h Handle) Type() ScalarType { return h.field.Type }

// String returns the table-qualified column name.
func (h Handle) String() string { return h.table.Name + "." + h.field.Name }

// Step is one executable schema-change statement tied to a table and a
// version: SQL text plus optional bound parameters. Steps report nothing
// back beyond success or failure.
type Step struct {
	SQL  string
	Args []any
}

// Exec builds a Step from a statement and its parameters.
func Exec(sql string, args ...any) Step {
	return Step{SQL: sql, Args: args}
}
