package offer

import "errors"

var ErrNotFound = errors.New("offer not found")

// ValidationError carries per-field failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid offer" }
