package notification

import "errors"

var (
	ErrNotFound    = errors.New("notification not found")
	ErrEmptyFilter = errors.New("bulk delete needs a filter")
)
