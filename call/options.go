package call

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures a [Func].
//
// Returning an error makes [Bind] fail with an error wrapping
// [ErrInvalidOption].
type Option func(*config) error

type config struct {
	name    string
	logger  *zap.Logger
	metrics *Metrics
}

// WithName sets the name used in diagnostics, log fields and metric labels.
//
// By default the name is derived from the function's symbol.
func WithName(name string) Option {
	return func(cfg *config) error {
		if name == "" {
			return fmt.Errorf("%w: WithName requires a name", ErrInvalidOption)
		}

		cfg.name = name

		return nil
	}
}

// WithLogger sets the logger that records conversion failures. It overrides
// the package [Logger].
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return fmt.Errorf("%w: WithLogger requires a logger", ErrInvalidOption)
		}

		cfg.logger = l

		return nil
	}
}

// WithMetrics records calls and conversion failures in m.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) error {
		if m == nil {
			return fmt.Errorf("%w: WithMetrics requires metrics", ErrInvalidOption)
		}

		cfg.metrics = m

		return nil
	}
}
