package grid

import "errors"

// ErrInvalidThresholds indicates a threshold pair with low > high.
var ErrInvalidThresholds = errors.New("invalid thresholds: low must not exceed high")
