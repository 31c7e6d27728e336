// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AnalysisQueueSize bounds the in-memory analysis-job queue.
	AnalysisQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the document store.
	ShardCount int `koanf:"shard_count"`

	// MaxMentorResults caps the mentor ranking result size.
	MaxMentorResults int `koanf:"max_mentor_results"`

	// Nine-box thresholds. A rating below the low cutoff is Low,
	// at or above the high cutoff is High, Medium otherwise.
	PerformanceLowThreshold  float64 `koanf:"performance_low_threshold"`
	PerformanceHighThreshold float64 `koanf:"performance_high_threshold"`
	PotentialLowThreshold    float64 `koanf:"potential_low_threshold"`
	PotentialHighThreshold   float64 `koanf:"potential_high_threshold"`

	// ModelPath points at the readiness model artifact. Empty selects the
	// embedded default artifact.
	ModelPath string `koanf:"model_path"`

	// SkillSynonyms maps a canonical skill to accepted aliases for the
	// deterministic gap matcher.
	SkillSynonyms map[string][]string `koanf:"skill_synonyms"`

	// DefaultRequiredScores is used when a role record carries no
	// required_scores mapping.
	DefaultRequiredScores map[string]float64 `koanf:"default_required_scores"`

	// GeminiAPIKey enables the optional LLM collaborators when set.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the model used by the LLM collaborators.
	GeminiModel string `koanf:"gemini_model"`

	// LLMTimeoutMS bounds each external collaborator call.
	LLMTimeoutMS int `koanf:"llm_timeout_ms"`
}

// New creates a Config populated with defaults. Callers layer file and
// environment overrides on top via Load.
func New() *Config {
	c := &Config{
		LogLevel:                 "info",
		Addr:                     ":9080",
		AnalysisQueueSize:        50_000,
		WorkerCount:              runtime.NumCPU() * 4,
		DedupeSize:               100_000,
		ShardCount:               8,
		MaxMentorResults:         3,
		PerformanceLowThreshold:  3.5,
		PerformanceHighThreshold: 4.0,
		PotentialLowThreshold:    3.5,
		PotentialHighThreshold:   4.0,
		ModelPath:                "",
		SkillSynonyms:            map[string][]string{},
		DefaultRequiredScores: map[string]float64{
			"technical":     75,
			"communication": 75,
			"leadership":    70,
		},
		GeminiModel:  "gemini-2.5-flash",
		LLMTimeoutMS: 10_000,
	}
	return c
}
