package csvfile

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for ingestion errors.
var (
	ErrFileNotFound  = errors.New("file not found")
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingFields = errors.New("missing required fields")
	ErrMalformedRow  = errors.New("malformed row")
	ErrDataError     = errors.New("data error")
)

// MissingFieldsError reports required headers absent from a file.
type MissingFieldsError struct {
	Path    string
	Missing []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("file %s: %s: %s", e.Path, ErrMissingFields, strings.Join(e.Missing, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

// MalformedRowError reports a row whose field count differs from the header,
// or an I/O failure while reading the file (Err set, Got/Want zero).
type MalformedRowError struct {
	Path string
	Line int
	Want int
	Got  int
	Err  error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		if e.Line > 0 {
			return fmt.Sprintf("file %s: %s at line %d: %v", e.Path, ErrMalformedRow, e.Line, e.Err)
		}
		return fmt.Sprintf("file %s: %s: %v", e.Path, ErrMalformedRow, e.Err)
	}
	return fmt.Sprintf("file %s: %s at line %d: expected %d fields, got %d", e.Path, ErrMalformedRow, e.Line, e.Want, e.Got)
}

func (e *MalformedRowError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRow, e.Err}
	}
	return []error{ErrMalformedRow}
}

// DataError reports a row that could not become a record.
type DataError struct {
	Path string
	Line int
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s in file %s at line %d: %v", ErrDataError, e.Path, e.Line, e.Err)
}

func (e *DataError) Unwrap() []error { return []error{ErrDataError, e.Err} }
