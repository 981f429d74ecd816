package model

import "errors"

// Sentinel kinds for record validation errors.
var (
	ErrNegativeValue = errors.New("negative value")
)
