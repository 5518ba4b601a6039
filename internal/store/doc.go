// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Mutations that must succeed or fail together run through a UnitOfWork,
// which hands a transaction-bound Stores set to a callback.
package store
