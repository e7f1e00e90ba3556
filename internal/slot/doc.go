// Package slot provides durable key-value slots for the encrypted state blob.
//
// A slot is one named entry holding an opaque string. The store keeps the
// whole application state under a single well-known key, so backends only
// need whole-value get and put.
//
// # Backends
//
//   - SQLite (default): one row per key in the slots table, WAL mode
//   - Badger: embedded LSM key-value store, one key per slot
//   - Memory: map-backed, for tests and dry runs
//
// # Errors
//
// Put failures are reported as *PersistenceError with a Reason of
// unavailable or quota-exceeded. Callers treat them as non-fatal: the
// in-memory state stays authoritative for the session.
package slot
