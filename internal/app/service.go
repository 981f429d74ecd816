// Package service runs a payroll report: it reads every input file,
// builds records and renders the selected report.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okian/payroll/internal/adapters/csvfile"
	"github.com/okian/payroll/internal/domain/model"
	"github.com/okian/payroll/internal/domain/report"
	"github.com/okian/payroll/pkg/logger"
	"github.com/okian/payroll/pkg/metrics"
)

// Service wires ingestion to report generation.
type Service struct {
	logger   logger.Logger
	registry *report.Registry
	reader   *csvfile.Reader
	metrics  *metrics.Manager
}

// New constructs a Service. Without options it uses the default registry,
// the process-wide metrics manager and a discarding logger.
func New(opts ...Option) *Service {
	s := &Service{
		logger:   logger.Nop(),
		registry: report.Default,
		metrics:  metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.reader == nil {
		s.reader = csvfile.NewReader(
			csvfile.WithLogger(s.logger.Named("ingest")),
			csvfile.WithMetrics(s.metrics),
		)
	}

	return s
}

// Run reads paths in order and renders reportName over all their records.
// Any failure aborts the whole run; no partial report is produced.
func (s *Service) Run(ctx context.Context, paths []string, reportName string) (string, error) {
	runID := logger.String("run_id", uuid.NewString())

	gen, err := s.registry.Lookup(reportName)
	if err != nil {
		s.logger.Error(ctx, "run failed", runID, logger.Error(err))
		return "", err
	}
	if len(paths) == 0 {
		s.logger.Error(ctx, "run failed", runID, logger.Error(ErrNoInput))
		return "", ErrNoInput
	}

	s.logger.Info(ctx, "run started", runID,
		logger.String("report", reportName),
		logger.Strings("files", paths),
	)

	records, err := s.load(ctx, paths)
	if err != nil {
		s.logger.Error(ctx, "run failed", runID, logger.Error(err))
		return "", err
	}

	start := time.Now()
	out := gen.Generate(records)
	s.metrics.RecordReportGenerated(reportName, time.Since(start).Seconds())
	total := totalPayout(records).InexactFloat64()
	s.metrics.SetPayoutTotal(total)

	s.logger.Info(ctx, "report generated", runID,
		logger.String("report", reportName),
		logger.Int("files", len(paths)),
		logger.Int("records", len(records)),
		logger.Float64("payout_total", total),
	)
	return out, nil
}

// Reports lists the report names the service can render.
func (s *Service) Reports() []string {
	return s.registry.Names()
}

func (s *Service) load(ctx context.Context, paths []string) ([]model.Record, error) {
	var all []model.Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}
		records, err := s.reader.ReadRecords(ctx, path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func totalPayout(records []model.Record) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Payout())
	}
	return total
}
