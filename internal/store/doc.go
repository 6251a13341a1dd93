// Package store persists flattened backlog tickets in SQLite.
//
// The database holds normalized rows derived from a parsed document: one row
// per de-duplicated ticket, one row per section, and an audit row per import
// batch. Rows convert back into backlog values without re-parsing text; a
// ticket whose stored markdown is non-empty round-trips byte-exact.
//
// Writes go through a mutex-guarded transaction wrapper that retries on
// SQLITE_BUSY, and the store holds an advisory file lock beside the database
// so concurrent CLI invocations cannot interleave imports. Schema changes
// are applied as embedded SQL migrations tracked in schema_migrations.
package store
