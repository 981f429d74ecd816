package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/payroll/internal/domain/model"
	"github.com/okian/payroll/pkg/logger"
)

// BuildRecords converts rows read from path into validated records, in order.
// The first row that fails coercion or validation aborts the build with a
// *DataError naming path.
func (r *Reader) BuildRecords(ctx context.Context, path string, rows []Row) ([]model.Record, error) {
	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := buildRecord(row)
		if err != nil {
			dataErr := &DataError{Path: path, Line: row.Line, Err: err}
			r.metrics.RecordRecordRejected()
			r.logger.Error(ctx, "record rejected",
				logger.String("path", path),
				logger.Int("line", row.Line),
				logger.Error(err),
			)
			return nil, dataErr
		}
		records = append(records, rec)
	}

	r.metrics.AddRecordsBuilt(len(records))
	r.logger.Debug(ctx, "records built", logger.String("path", path), logger.Int("records", len(records)))
	return records, nil
}

// ReadRecords reads path and builds its records.
func (r *Reader) ReadRecords(ctx context.Context, path string) ([]model.Record, error) {
	rows, err := r.ReadRows(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.BuildRecords(ctx, path, rows)
}

func buildRecord(row Row) (model.Record, error) {
	rawID, err := field(row, FieldID)
	if err != nil {
		return model.Record{}, err
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return model.Record{}, fmt.Errorf("%s: invalid integer %q", FieldID, rawID)
	}

	hours, err := decimalField(row, FieldHoursWorked)
	if err != nil {
		return model.Record{}, err
	}
	rate, err := decimalField(row, FieldHourlyRate)
	if err != nil {
		return model.Record{}, err
	}

	email, err := field(row, FieldEmail)
	if err != nil {
		return model.Record{}, err
	}
	name, err := field(row, FieldName)
	if err != nil {
		return model.Record{}, err
	}
	department, err := field(row, FieldDepartment)
	if err != nil {
		return model.Record{}, err
	}

	return model.NewRecord(id, email, name, department, hours, rate)
}

func field(row Row, key string) (string, error) {
	v, ok := row.Get(key)
	if !ok {
		return "", fmt.Errorf("missing field %s", key)
	}
	return strings.TrimSpace(v), nil
}

func decimalField(row Row, key string) (decimal.Decimal, error) {
	raw, err := field(row, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q", key, raw)
	}
	return d, nil
}
