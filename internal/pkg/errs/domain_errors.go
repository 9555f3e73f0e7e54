package errs

import "errors"

// Sentinel errors shared between the usecase and handler layers
var (
	// Lookup errors
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleInUse    = errors.New("vehicle is referenced by an auction")

	// Concurrency errors
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
