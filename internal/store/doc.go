// Package store owns the single ApplicationState value of a beloved
// installation.
//
// The store loads the persisted blob once, migrates it to the current
// schema, and from then on hands out value snapshots and accepts whole
// replacements. Every accepted replacement is encoded and written to the
// slot immediately.
//
// # Load
//
//   - Absent slot, unreadable slot or undecodable blob: the default state is
//     used and nothing is written. A corrupt blob stays in place for
//     inspection until the next successful Write replaces it.
//   - Decodable blob: the document is migrated (see internal/migrate), then
//     decoded. Invariant violations in persisted data are logged, not
//     repaired.
//
// # Write
//
// Write validates the replacement before accepting it. Once accepted, the
// in-memory state is the replacement even if persisting it fails: the
// caller receives a *slot.PersistenceError as a non-fatal warning and the
// in-memory copy stays authoritative for the rest of the process. A failed
// write is lost when the process exits.
//
// # Concurrency
//
// One control thread is the expected caller. State access is still guarded
// by a RWMutex, and Write/Update are serialized, so concurrent misuse cannot
// tear the aggregate.
package store
