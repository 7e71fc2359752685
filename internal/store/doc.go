// Package store provides a SQLite-backed catalog of parsed type definitions.
//
// Every invocation of the parser that should be remembered is recorded as a
// run. A run holds the definitions it produced, in source order:
//   - runs: one row per parse run (id, source, seq)
//   - typedefs: one row per definition (run_id, seq, id, name, body)
//   - fields: one row per declared field, used by Search
//
// # Identity and ordering
//
//   - Run IDs are UUIDv7 strings by default, time-sortable for debugging
//   - Definition IDs are content hashes from ir.TypeDefID; the same
//     definition recorded twice shares an ID
//   - Bodies are stored as canonical JSON
//   - All ordering uses seq columns, never timestamps, so queries return
//     identical results on every read
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
