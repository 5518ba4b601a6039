// Package testdb provides utilities for database integration tests.
//
// Tests call OpenTestDB, which skips the test unless DATABASE_URL is set,
// applies the embedded migrations once per process, and returns a shared
// connection. WithTx then gives each test its own transaction that is always
// rolled back, so tests never see each other's rows.
package testdb
