package errs

import "errors"

// Sentinel errors shared by the command and query sides
var (
	// Order ledger errors
	ErrOrderNotFound = errors.New("order not found")

	// Idempotency errors
	ErrIdempotencyKeyInvalid = errors.New("invalid idempotency key")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
