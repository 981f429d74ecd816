// Package csvfile reads employee work-hour files into validated records.
//
// The format is deliberately minimal: the first line holds column names,
// every following line is split on a single delimiter. Quoting and escaped
// delimiters are not supported.
package csvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/okian/payroll/pkg/logger"
	"github.com/okian/payroll/pkg/metrics"
)

// Column names every input file must declare.
const (
	FieldID          = "id"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldDepartment  = "department"
	FieldHoursWorked = "hours_worked"
	FieldHourlyRate  = "hourly_rate"
)

const (
	defaultDelimiter = ","
	maxLineBytes     = 1 << 20
	utf8BOM          = "\uFEFF"
)

// RequiredFields lists the mandatory headers in canonical order.
var RequiredFields = []string{
	FieldID,
	FieldEmail,
	FieldName,
	FieldDepartment,
	FieldHoursWorked,
	FieldHourlyRate,
}

// Row is one parsed data line keyed by header name.
type Row struct {
	// Line is the 1-based line number; the header is line 1.
	Line   int
	Fields map[string]string
}

// Get returns the value for a header and whether the header exists.
func (r Row) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// Reader parses input files. It holds no per-file state.
type Reader struct {
	delimiter string
	logger    logger.Logger
	metrics   *metrics.Manager
}

// NewReader constructs a Reader with comma delimiter, a discarding logger and
// the process-wide metrics manager unless overridden.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		delimiter: defaultDelimiter,
		logger:    logger.Nop(),
		metrics:   metrics.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadRows reads path and returns its data rows in file order.
func (r *Reader) ReadRows(ctx context.Context, path string) ([]Row, error) {
	rows, err := r.readRows(path)
	if err != nil {
		r.metrics.RecordFileRead(metrics.ResultError)
		r.logger.Error(ctx, "file read failed", logger.String("path", path), logger.Error(err))
		return nil, err
	}

	r.metrics.RecordFileRead(metrics.ResultOK)
	r.metrics.AddRowsRead(len(rows))
	r.logger.Info(ctx, "file read", logger.String("path", path), logger.Int("rows", len(rows)))
	return rows, nil
}

func (r *Reader) readRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &MalformedRowError{Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &MalformedRowError{Path: path, Line: 1, Err: err}
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	headerLine := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), utf8BOM))
	if headerLine == "" {
		return nil, fmt.Errorf("%w: %s has no header line", ErrEmptyFile, path)
	}

	headers := strings.Split(headerLine, r.delimiter)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	if missing := missingFields(headers); len(missing) > 0 {
		return nil, &MissingFieldsError{Path: path, Missing: missing}
	}

	var rows []Row
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		values := strings.Split(line, r.delimiter)
		if len(values) != len(headers) {
			return nil, &MalformedRowError{Path: path, Line: lineNo, Want: len(headers), Got: len(values)}
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = values[i]
		}
		rows = append(rows, Row{Line: lineNo, Fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedRowError{Path: path, Line: lineNo + 1, Err: err}
	}

	return rows, nil
}

// missingFields returns the required fields absent from headers, in canonical order.
func missingFields(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, f := range RequiredFields {
		if _, ok := present[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
