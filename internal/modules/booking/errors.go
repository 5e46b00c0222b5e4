package booking

import "errors"

var (
	ErrNotFound       = errors.New("booking not found")
	ErrUnknownService = errors.New("service does not exist")
	ErrInvalidStatus  = errors.New("unknown booking status")
	ErrStatusConflict = errors.New("booking status changed concurrently")
)
