package service

import (
	"github.com/okian/payroll/internal/adapters/csvfile"
	"github.com/okian/payroll/internal/domain/report"
	"github.com/okian/payroll/pkg/logger"
	"github.com/okian/payroll/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithRegistry sets the report registry used to resolve report names.
func WithRegistry(registry *report.Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithReader sets the file reader. By default one is built sharing the
// service's logger and metrics.
func WithReader(reader *csvfile.Reader) Option {
	return func(s *Service) {
		if reader != nil {
			s.reader = reader
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}
