package errors

import "errors"

var (
	ErrFieldRequired       = errors.New("all fields are required")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUnknownAlgorithm    = errors.New("unknown digest algorithm")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrInvalidCertID       = errors.New("invalid certificate id")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrStoreRejected       = errors.New("store rejected operation")
)
