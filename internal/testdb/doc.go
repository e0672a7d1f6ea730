// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it are skipped unless DATABASE_URL is
// set. Each test runs inside a transaction that is always rolled back, so
// tests never see each other's rows.
package testdb
