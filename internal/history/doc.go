// Package history provides SQLite-based storage of scoring outcomes.
//
// Every persisted check is keyed by URL with its score, verdict, reasons,
// and timestamp, and can be listed in reverse-chronological order. This
// is the log-store collaborator of the service boundary, implemented
// locally so the CLI is self-contained.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for an append-and-list workload
//  4. WAL mode provides good concurrent read performance
package history
