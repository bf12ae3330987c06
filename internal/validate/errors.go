package validate

import "errors"

var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrPatternTooLong = errors.New("pattern too long")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidRoot    = errors.New("invalid root")
)
