package service

import (
	"errors"
	"fmt"

	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/storage"
)

var (
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for unknown sessions, alerts, rulesets and
	// configurations, and for ids that belong to another project.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the request collides with a run or window
	// load already in flight.
	ErrConflict = errors.New("conflict")
	// ErrExternalService is returned when the execution service rejects a run
	// or cannot be reached.
	ErrExternalService = errors.New("external service error")
)

// ValidationError reports the request field that failed validation, using its
// JSON path (e.g. "ruleset.rulesetId").
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFoundOr maps storage.ErrNotFound to ErrNotFound and wraps anything else.
func notFoundOr(err error, what, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return WrapError(err, msg)
}

// runError translates a run failure into the service error space. Orchestrator
// errors are kept in the chain.
func runError(err error, kind backend.Kind) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, runner.ErrInvalidQuery):
		return &ValidationError{Field: "query", Message: fmt.Sprintf("is not valid for backend %s", kind)}
	case errors.Is(err, runner.ErrRunInProgress):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, runner.ErrExecutionFailed), errors.Is(err, runner.ErrExecutorUnavailable):
		return fmt.Errorf("%w: %w", ErrExternalService, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return WrapError(err, "run failed")
	}
}
