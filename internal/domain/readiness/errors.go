package readiness

import "errors"

// Package errors.
var (
	// ErrModelNotLoaded indicates prediction was attempted without a
	// trained model artifact. Not recoverable inline; the caller must
	// load an artifact and retry.
	ErrModelNotLoaded = errors.New("readiness model not loaded")
	// ErrInvalidArtifact indicates a model artifact that fails
	// structural validation.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)
