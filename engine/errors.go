/*
errors.go - Centralized error types for the staffing engine

PURPOSE:
  All engine error types in one place. The engine distinguishes three
  bands of anomalies:

  1. Fatal - abort the call, no partial result:
       unresolved reference code, invalid parameter range, no job
       stations for the requested centre.
  2. Per-task recoverable - the task emits zero hours and a Warning is
       appended to the response (see types.go Warning).
  3. Silent normalisation - trimming, case folding, accent folding and
       defaulted parameters produce no signal at all.

  Only band 1 lives here. Bands 2 and 3 never surface as errors.

USAGE:
  Callers branch on the stable kind string:

    var simErr *engine.SimulationError
    if errors.As(err, &simErr) && simErr.Kind == engine.KindCentreNotFound {
        // map to HTTP 404
    }

  or on sentinels with errors.Is:

    if errors.Is(err, engine.ErrCentreNotFound) { ... }

SEE ALSO:
  - params.go: produces INVALID_PARAMETER
  - engine.go: produces CENTRE_NOT_FOUND and REFERENCE_UNRESOLVED
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCentreNotFound is returned when the requested centre has no job
	// stations (or does not exist at all).
	ErrCentreNotFound = errors.New("centre not found")

	// ErrInvalidParameter is returned when a caller-supplied scalar is
	// outside its documented range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrReferenceUnresolved is returned when a volume-grid key carries a
	// flow, direction or segment code unknown to the catalogue.
	ErrReferenceUnresolved = errors.New("reference code unresolved")
)

// =============================================================================
// ERROR KINDS - Stable discriminators for the transport layer
// =============================================================================

const (
	KindCentreNotFound      = "CENTRE_NOT_FOUND"
	KindInvalidParameter    = "INVALID_PARAMETER"
	KindReferenceUnresolved = "REFERENCE_UNRESOLVED"
)

// =============================================================================
// STRUCTURED ERROR
// =============================================================================

// SimulationError is the tagged failure raised for every fatal anomaly.
// Kind is one of the Kind* constants; Detail is a free-text explanation
// for humans.
type SimulationError struct {
	Kind   string
	Detail string
	err    error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *SimulationError) Unwrap() error { return e.err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// KindOf extracts the stable kind string from an error, or "" when the
// error is not a SimulationError.
func KindOf(err error) string {
	var simErr *SimulationError
	if errors.As(err, &simErr) {
		return simErr.Kind
	}
	return ""
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrReferenceUnresolved)
}

// IsNotFound returns true if the error indicates a missing centre.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCentreNotFound)
}

func centreNotFound(id CentreID) error {
	return &SimulationError{
		Kind:   KindCentreNotFound,
		Detail: fmt.Sprintf("no job stations for centre %d", id),
		err:    ErrCentreNotFound,
	}
}

func referenceUnresolved(what, code string) error {
	return &SimulationError{
		Kind:   KindReferenceUnresolved,
		Detail: fmt.Sprintf("unknown %s code %q", what, code),
		err:    ErrReferenceUnresolved,
	}
}
