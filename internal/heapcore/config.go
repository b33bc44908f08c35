package heapcore

import "go.uber.org/zap"

// Config holds the knobs shared by every collector façade. It plays the
// same role as compileopts.Options in the teacher repo: a plain struct
// populated by chained setters rather than a file-backed configuration
// loader, since this toolkit is an in-process library with no persisted
// state (spec §6).
type Config struct {
	// MaxAllocRetries bounds the retry loop spec §4.4 describes for
	// Heap.allocate: request_gc, yield_point, retry. Supplements the
	// spec's suggested default of 3 as an inspectable field rather than a
	// hardcoded constant, per original_source's alloc/api.rs retry loop.
	MaxAllocRetries int

	// Logger receives a Debug record when a collection starts and an Info
	// record when it finishes. Heap construction and handle-table growth
	// are not logged.
	Logger *zap.Logger
}

// DefaultConfig returns the Config every collector constructor starts from:
// three retries and a no-op logger.
func DefaultConfig() Config {
	return Config{
		MaxAllocRetries: 3,
		Logger:          zap.NewNop(),
	}
}

// Option mutates a Config during collector construction.
type Option func(*Config)

// WithMaxAllocRetries overrides the bounded retry count used by the
// allocate-with-retry convenience wrapper.
func WithMaxAllocRetries(n int) Option {
	return func(c *Config) { c.MaxAllocRetries = n }
}

// WithLogger overrides the structured logger used for collection
// instrumentation.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// Apply folds a list of Options onto a base Config, returning the result.
func Apply(base Config, opts ...Option) Config {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
