// Package database provides SQLite-based run-history storage.
//
// This package implements the RunDB, which stores:
//   - One row per completed vocabulary build run
//   - Per-group summary rows (retained, written, skipped counts)
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// The database records run outcomes only. API responses are never cached
// here; every build fetches fresh data.
package database
