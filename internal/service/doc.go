// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// defined in internal/store to fulfill the board, column, card and account
// operations exposed by the API.
//
// Every operation takes the authenticated caller's user id. Entities on
// boards the caller does not own are reported as not found, never as
// forbidden, so ids belonging to other users are indistinguishable from ids
// that do not exist.
//
// Bulk column and card updates run through internal/service/bulk inside a
// single store.UnitOfWork transaction; a failing item rolls back the whole
// batch.
package service
