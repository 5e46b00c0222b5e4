package files

import "errors"

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrInvalidFolder   = errors.New("invalid folder")
	ErrNotFound        = errors.New("file not found")
)
