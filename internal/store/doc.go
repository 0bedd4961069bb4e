// Package store owns the single SQLite connection backing the music library.
//
// [Store] is a pool of one: a cached [database/sql.DB] capped at a single
// underlying connection, guarded by one mutex shared between connection
// (re)establishment and schema initialization. Callers always observe either
// a live, fully configured connection or an error, never a stale handle.
//
// Key behaviors:
//   - [Store.Conn] : probes the cached connection and transparently reopens
//     it on failure, retrying per the configured [RetryPolicy]
//   - [Store.InitAndSeed] : transactional, re-entrant schema creation plus
//     first-run sample data and the default admin account
//   - [Store.Close] : idempotent teardown, safe from an exit hook
//
// Every (re)opened connection is configured before use: WAL journaling,
// synchronous=NORMAL, an enlarged page cache, memory-mapped I/O up to a
// fixed ceiling, and foreign-key enforcement. The busy timeout on the DSN
// absorbs transient lock contention from WAL checkpointing.
package store
