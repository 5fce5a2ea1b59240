// Package myerrors contains sentinel errors shared by the agent packages
package myerrors

import "errors"

// Counter source errors. Both are tick-local: the scheduler logs them and keeps going.
var (
	ErrSourceUnavailable = errors.New("counter source unavailable")
	ErrSourceMalformed   = errors.New("counter source malformed")
)

// Reporting errors
var (
	ErrNoSummaryPath = errors.New("step summary path is not set")
	ErrHashMismatch  = errors.New("snapshot hash mismatch")
)
