// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, the embedded
// goose migrations that create their schema, and a UnitOfWork that binds
// every store to one transaction.
//
// Connections are opened through database/sql with the pgx stdlib driver
// registered under the name "pgx".
package postgres
