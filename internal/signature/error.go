package signature

import "errors"

var (
	ErrUnknownSpec       = errors.New("unknown hash parameter spec")
	ErrMissingHash       = errors.New("response contains no hash")
	ErrSignatureMismatch = errors.New("hash does not match the expected value")
)
