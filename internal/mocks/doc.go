// Package mocks provides shared test doubles.
//
// Service and token mocks use function fields, so a test overrides only the
// calls it cares about:
//
//	jwtService := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, userID int64) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// MemoryUnitOfWork is an in-memory store.UnitOfWork with the same ordering,
// cascade and ownership rules as the Postgres stores. Its RunInTx publishes
// changes only when the callback succeeds, which lets service tests check
// batch atomicity without a database.
package mocks
