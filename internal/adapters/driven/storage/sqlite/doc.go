// Package sqlite provides the durable word table on top of SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is created by the versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.wordbook/data/words.db
//
// # Thread Safety
//
// All operations are thread-safe. The database runs in WAL mode with a busy
// timeout, so several wordbook processes may share one file.
package sqlite
