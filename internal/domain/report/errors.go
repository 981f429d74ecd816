package report

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for report errors.
var (
	ErrUnknownReport = errors.New("unknown report type")
	ErrDuplicate     = errors.New("report type already registered")
)

// UnknownReportError reports a lookup by an unregistered name.
type UnknownReportError struct {
	Name      string
	Available []string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("%s %q; available reports: %s", ErrUnknownReport, e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownReportError) Unwrap() error { return ErrUnknownReport }
