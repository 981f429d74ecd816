package csvfile

import (
	"github.com/okian/payroll/pkg/logger"
	"github.com/okian/payroll/pkg/metrics"
)

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithDelimiter sets the column delimiter.
func WithDelimiter(delimiter rune) Option {
	return func(r *Reader) {
		if delimiter != 0 {
			r.delimiter = string(delimiter)
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Reader) {
		if m != nil {
			r.metrics = m
		}
	}
}
