package model

import "errors"

// Sentinel error kinds for boundary validation. These allow errors.Is/As
// from callers.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field value")
)
