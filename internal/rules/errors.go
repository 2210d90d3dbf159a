package rules

import (
	"errors"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/pattern"
)

// Sentinel errors. Rules wrap them with context; test with errors.Is.
var (
	// ErrBadFormat reports a malformed pattern list, BIOS list or parameter.
	ErrBadFormat = pattern.ErrBadFormat
	// ErrMissingPrerequisite reports a rule run without the catalog or
	// reference directory it depends on.
	ErrMissingPrerequisite = errors.New("missing prerequisite")
	// ErrNotFound reports a catalog or reference path that does not exist.
	ErrNotFound = catalog.ErrNotFound
)

// Status is the outcome class of a rule invocation.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidInput
	StatusMissingPrerequisite
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidInput:
		return "invalid-input"
	case StatusMissingPrerequisite:
		return "missing-prerequisite"
	default:
		return "failed"
	}
}

// StatusOf classifies err.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrBadFormat):
		return StatusInvalidInput
	case errors.Is(err, ErrMissingPrerequisite), errors.Is(err, ErrNotFound):
		return StatusMissingPrerequisite
	default:
		return StatusFailed
	}
}

// ExitCode maps a status to the process exit code.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusInvalidInput, StatusMissingPrerequisite:
		return 2
	default:
		return 1
	}
}
