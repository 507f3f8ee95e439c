// Package store provides SQLite-backed persistence for outline records.
//
// The store is the engine's only collaborator for durable state. It
// exposes ordered sibling reads, record CRUD, and multi-statement
// transactions; it enforces exactly one invariant itself: the UNIQUE
// index on (level, parent_id, seq), checked per statement. Everything
// above that — dense numbering, compaction, the two-phase offset
// write — lives in package engine.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//   - single-writer connection pool: SQLite supports one writer at a
//     time; limiting the pool to one connection serializes mutations
//     on the same database instead of surfacing SQLITE_BUSY
//
// All sibling reads use ORDER BY seq ASC for deterministic results.
package store
