package marshal

import (
	"go.uber.org/zap"

	"field-marshaller/internal/config"
	"field-marshaller/resolve"
)

type options struct {
	workers  int
	preAlloc bool
	prefix   string
	matcher  ValidationMatcher
	resolver *resolve.Resolver
	logger   *zap.Logger
	metrics  bool
}

func defaultOptions() options {
	return options{
		workers:  1,
		matcher:  DefaultValidationMatcher,
		resolver: resolve.Default(),
		metrics:  true,
	}
}

// Option configures a Marshaller.
type Option func(opts *options)

// WithWorkers runs batch items on a pool of n workers. n <= 1 keeps batches sequential.
func WithWorkers(n int) Option {
	return func(opts *options) {
		opts.workers = n
	}
}

// WithPreAlloc allocates every pool worker when the pool is first used.
func WithPreAlloc(enabled bool) Option {
	return func(opts *options) {
		opts.preAlloc = enabled
	}
}

// WithPrefix requests a prefix on every output key. Renaming is not supported:
// a non-empty prefix makes every call fail with ErrRenameUnsupported.
func WithPrefix(prefix string) Option {
	return func(opts *options) {
		opts.prefix = prefix
	}
}

// WithValidationMatcher replaces the recognizer of validation failures.
func WithValidationMatcher(matcher ValidationMatcher) Option {
	return func(opts *options) {
		if matcher != nil {
			opts.matcher = matcher
		}
	}
}

// WithResolver replaces the resolver used to look field names up.
func WithResolver(r *resolve.Resolver) Option {
	return func(opts *options) {
		if r != nil {
			opts.resolver = r
		}
	}
}

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithMetrics toggles prometheus collector updates. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(opts *options) {
		opts.metrics = enabled
	}
}

// OptionsFromConfig translates the engine and metrics sections of cfg.
func OptionsFromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}

	return []Option{
		WithWorkers(cfg.Engine.Workers),
		WithPreAlloc(cfg.Engine.PreAlloc),
		WithPrefix(cfg.Engine.Prefix),
		WithMetrics(cfg.Metrics.Enabled),
	}
}
