// Package testdb provides PostgreSQL databases for integration tests.
//
// Open returns a migrated database and registers its cleanup with the test.
// When WORDBANK_TEST_DATABASE_URL is set that database is used and its tables
// are truncated afterwards; otherwise a disposable postgres container is
// started with testcontainers.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    words := postgres.NewWordStore(db)
//	    ...
//	}
//
// Callers are expected to sit behind the integration build tag.
package testdb
