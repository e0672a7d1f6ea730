// Package postgres provides PostgreSQL implementations of the store
// interfaces, the embedded schema migrations, and the mapping from
// PostgreSQL error codes to store errors.
package postgres
