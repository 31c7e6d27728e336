package ai

import (
	"time"

	"github.com/successionai/talentd/pkg/logger"
)

// defaultCallTimeout bounds a single model call when no override is given.
const defaultCallTimeout = 10 * time.Second

// Option applies a configuration option to a collaborator.
type Option func(*settings)

type settings struct {
	log     logger.Logger
	timeout time.Duration
}

func newSettings(opts ...Option) settings {
	s := settings{
		log:     logger.Nop(),
		timeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger overrides the default no-op logger.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCallTimeout bounds each model call. Non-positive durations keep
// the default.
func WithCallTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}
