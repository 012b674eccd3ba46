package contract

import "errors"

// Abort tags. Clients match on these exact messages, so they are returned
// unwrapped wherever the tag alone is the whole failure.
var (
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrFeeOutOfRange      = errors.New("Fee percent must be between 0 and 10000 (100%)")
	ErrEventAlreadyExists = errors.New("Event already exists")
	ErrEventNotFound      = errors.New("Event not found")
	ErrNotInitialized     = errors.New("Contract not initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidArgument    = errors.New("invalid argument")
)
