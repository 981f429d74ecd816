package service

import "errors"

// Sentinel kinds for run errors.
var (
	ErrNoInput = errors.New("no input files")
)
