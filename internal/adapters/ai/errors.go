package ai

import "errors"

// Sentinel kinds for collaborator errors. Callers never surface these
// raw; they trigger the deterministic fallback instead.
var (
	ErrEmptyResponse     = errors.New("model returned empty response")
	ErrMalformedResponse = errors.New("model returned malformed response")
)
