// Package integrationtest provides helpers for tests that run against a
// real database.
package integrationtest

import (
	"database/sql"
	"testing"
)

// Flush removes all accounts and their balance history. Seeded categories
// are kept so subsequent tests can rely on them.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("TRUNCATE accounts CASCADE"); err != nil {
		t.Fatalf("flushing accounts: %v", err)
	}
}
