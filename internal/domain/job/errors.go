package job

import "errors"

var (
	// ErrJobNotFound indicates the predefined job doesn't exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidInput indicates invalid job input.
	ErrInvalidInput = errors.New("invalid job input")
)
