package evolve

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/evolvesql/evolve/metrics"
)

// Config holds settings for the migration engine.
type Config struct {
	// Driver is the database driver, one of "pg", "sqlite3" or "mysql".
	Driver string

	// VersionTable is the name of the metadata table holding the persisted
	// schema version.
	VersionTable string

	// Logger receives structured progress logs. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig provides default values for configuration.
var DefaultConfig = Config{
	VersionTable: "schema_version",
}

// Evolver drives a database from its persisted schema version up to the
// version the schema expects. It reads the version marker, plans the
// pending steps, applies them in one transaction and rewrites the marker.
//
// An Evolver issues its statements sequentially on the single *sql.DB it
// was given. Concurrent Initialise calls from separate processes against
// the same database are a caller problem: serialize them with an advisory
// lock or equivalent, the engine does not arbitrate between initializers
// that read the same stale version.
type Evolver struct {
	cfg    Config
	schema *Schema
	client Client
	log    *zap.Logger
	stats  *metrics.Collector
}

// New creates an Evolver for the given schema and database connection.
func New(cfg Config, schema *Schema, db *sql.DB) (*Evolver, error) {
	if cfg.VersionTable == "" {
		cfg.VersionTable = DefaultConfig.VersionTable
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	client, err := NewClient(cfg, db)
	if err != nil {
		return nil, err
	}
	// Handing the schema to an executor ends its declaration phase.
	schema.freeze()
	return &Evolver{
		cfg:    cfg,
		schema: schema,
		client: client,
		log:    cfg.Logger,
		stats:  metrics.NewCollector(),
	}, nil
}

// DatabaseVersion returns the persisted schema version, or the zero
// version when the version store does not exist yet.
func (e *Evolver) DatabaseVersion(ctx context.Context) (Version, error) {
	return e.client.ReadVersion(ctx)
}

// MigrationsNeeded reports, without mutating anything, the distinct
// ascending versions that have at least one step pending. An empty result
// means Initialise would perform no schema writes.
func (e *Evolver) MigrationsNeeded(ctx context.Context) ([]Version, error) {
	persisted, err := e.client.ReadVersion(ctx)
	if err != nil {
		return nil, err
	}
	plan := e.schema.Plan(persisted)
	var versions []Version
	for _, ps := range plan {
		if len(versions) == 0 || !versions[len(versions)-1].Equal(ps.Version) {
			versions = append(versions, ps.Version)
		}
	}
	return versions, nil
}

// Initialise brings the database up to the schema's target version. It is
// safe to call on every process startup: when nothing is pending it
// performs one read and no writes beyond possibly creating the version
// store.
//
// All pending steps run inside a single transaction and the version marker
// is rewritten as part of it, so a failing step leaves the database at the
// version it started from and the returned *StepError names the offender.
// Retrying after the cause is fixed replans from that same version.
func (e *Evolver) Initialise(ctx context.Context) error {
	start := time.Now()
	defer func() { e.stats.ObserveInitialiseDuration(time.Since(start)) }()

	if !e.schema.Versioned() {
		return e.initialiseStatic(ctx)
	}

	if err := e.client.EnsureVersionStore(ctx); err != nil {
		return err
	}
	persisted, err := e.client.ReadVersion(ctx)
	if err != nil {
		return err
	}
	plan := e.schema.Plan(persisted)
	if len(plan) == 0 {
		e.log.Debug("schema up to date",
			zap.Stringer("version", persisted))
		return nil
	}
	e.log.Info("applying schema migrations",
		zap.Stringer("from", persisted),
		zap.Stringer("to", e.schema.Target()),
		zap.Int("steps", len(plan)))

	tx, err := e.client.BeginTx(ctx)
	if err != nil {
		return err
	}
	for _, ps := range plan {
		if err := e.applyStep(ctx, tx, ps); err != nil {
			_ = tx.Rollback()
			e.stats.IncInitialiseFailures()
			e.log.Error("migration rolled back", zap.Error(err))
			return err
		}
	}
	if err := e.client.WriteVersion(ctx, tx, e.schema.Target()); err != nil {
		_ = tx.Rollback()
		e.stats.IncInitialiseFailures()
		return err
	}
	if err := tx.Commit(); err != nil {
		e.stats.IncInitialiseFailures()
		return fmt.Errorf("%w: commit: %v", ErrConnection, err)
	}

	e.stats.SetSchemaVersion(e.schema.Target().String())
	e.log.Info("schema migrated", zap.Stringer("version", e.schema.Target()))
	return nil
}

// applyStep executes one planned step inside tx.
func (e *Evolver) applyStep(ctx context.Context, tx *sql.Tx, ps PlannedStep) error {
	stmt := ps.Step.SQL
	args := ps.Step.Args
	if ps.CreateTable {
		stmt = e.client.CreateTableSQL(ps.table, false)
		args = nil
	}
	e.log.Debug("applying step",
		zap.String("table", ps.TableName),
		zap.Stringer("version", ps.Version),
		zap.Bool("create", ps.CreateTable))
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return &StepError{Table: ps.TableName, Version: ps.Version, Err: err}
	}
	e.stats.IncStepsApplied(ps.TableName)
	return nil
}

// initialiseStatic creates every declared table if absent. Static schemas
// carry no version store, so creation is made idempotent with
// IF NOT EXISTS instead.
func (e *Evolver) initialiseStatic(ctx context.Context) error {
	tx, err := e.client.BeginTx(ctx)
	if err != nil {
		return err
	}
	for _, t := range e.schema.Tables() {
		ddl := e.client.CreateTableSQL(t, true)
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			_ = tx.Rollback()
			e.stats.IncInitialiseFailures()
			return &StepError{Table: t.Name, Err: err}
		}
		e.stats.IncStepsApplied(t.Name)
	}
	if err := tx.Commit(); err != nil {
		e.stats.IncInitialiseFailures()
		return fmt.Errorf("%w: commit: %v", ErrConnection, err)
	}
	e.log.Info("static schema ensured", zap.Int("tables", len(e.schema.Tables())))
	return nil
}
