package casedb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested case does not exist.
	ErrNotFound = errors.New("case not found")
)
