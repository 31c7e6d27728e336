package repository

import "time"

// Option applies a configuration option to the DocStore.
type Option func(*DocStore)

// WithShardCount sets how many shards employee-keyed documents are
// spread across.
func WithShardCount(count int) Option {
	return func(s *DocStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *DocStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}
