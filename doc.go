// SPDX-License-Identifier: MIT

// Package evolve lets an application declare its SQL tables, and their
// evolution across versions, as typed in-process objects, then brings a
// live database from whatever version it is at up to the version the code
// expects.
//
// A thin driver layer (currently PostgreSQL, SQLite and MySQL) supplies
// SQL dialect differences; the versioned schema model, the migration
// planner and the transactional executor live here.
//
// # Install
//
//	go get github.com/evolvesql/evolve@latest
//
// # Quick start
//
//	import (
//	    "context"
//	    "database/sql"
//
//	    _ "github.com/jackc/pgx/v5/stdlib" // or sqlite3, mysql
//	    "github.com/evolvesql/evolve"
//	)
//
//	func main() {
//	    db, _ := sql.Open("pgx", os.Getenv("DATABASE_URL"))
//
//	    schema := evolve.NewVersionedSchema(evolve.V(1, 2, 0))
//	    users := schema.MustDeclare("users",
//	        []evolve.Field{
//	            evolve.Column("id", evolve.TypeBigInt, evolve.AutoPrimaryKey()),
//	            evolve.Column("email", evolve.TypeText, evolve.NotNull(), evolve.Unique()),
//	        },
//	        evolve.Since(evolve.V(1, 0, 0)),
//	        evolve.Migrate(evolve.V(1, 2, 0),
//	            evolve.Exec(`ALTER TABLE users ADD COLUMN display_name TEXT`)),
//	    )
//	    _ = users // typed column handles for query building
//
//	    ev, _ := evolve.New(evolve.Config{Driver: "pg"}, schema, db)
//	    if err := ev.Initialise(context.Background()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Model
//
// A Schema accumulates Table descriptors during a declaration phase and
// freezes on first use. Each table names the Version it is introduced at
// (Since) and maps later versions to ordered migration Steps. The planner
// computes, purely in memory, the steps between the persisted version and
// the target: versions are the outer sort key so one logical revision
// spanning several tables stays contiguous, and declaration order breaks
// ties within a version.
//
// The executor applies the whole plan in a single transaction and rewrites
// the single-row version store as part of it. A failing step rolls back
// everything and leaves the marker untouched, so a retry after the cause
// is fixed replans from the same starting point.
//
// Initialise is safe to run on every startup, but not concurrently from
// several processes against one database; serialize initializers with an
// advisory lock or similar.
//
// # Configuration
//
// Use Config to tweak behaviour:
//
//   - Driver       — database driver name ("pg", "sqlite3", "mysql")
//   - VersionTable — table storing the persisted version (default "schema_version")
//   - Logger       — optional *zap.Logger for progress logs
//
// # CLI helper
//
// A small inspection CLI lives under cmd/evolve; see its documentation for
// flags and usage.
package evolve
