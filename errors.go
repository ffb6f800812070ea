package strips

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation: malformed
	// expressions, unsafe rules, or invalid action schemas.
	KindValidation = "validation"

	// KindSearch represents errors raised while searching for a plan,
	// including exhausted bounds.
	KindSearch = "search"

	// KindStorage represents errors from the persistence backend.
	KindStorage = "storage"

	// KindConfiguration represents errors related to solver or domain
	// configuration.
	KindConfiguration = "configuration"

	// KindTimeout represents deadline or cancellation errors.
	KindTimeout = "timeout"

	// KindInternal represents internal errors.
	KindInternal = "internal"
)

// PlanError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// PlanError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &PlanError{
//		Op:   "Solver.Solve",
//		Kind: KindSearch,
//		Err:  planning.ErrPlanNotFound,
//	}
type PlanError struct {
	// Op is the operation that failed (e.g., "Solver.Solve", "PDDL").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindSearch).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include domain names, expression text, or search statistics.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *PlanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("strips: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("strips: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("strips: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// Is implements error matching for PlanError, allowing comparison based on
// the underlying error or the PlanError itself.
func (e *PlanError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is a PlanError with matching Kind
	if t, ok := target.(*PlanError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new PlanError with the provided context added.
// This is useful for adding debugging information to errors.
func (e *PlanError) WithContext(ctx map[string]any) *PlanError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new PlanError with KindValidation.
func NewValidationError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewSearchError creates a new PlanError with KindSearch.
func NewSearchError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindSearch,
		Err:  err,
	}
}

// NewStorageError creates a new PlanError with KindStorage.
func NewStorageError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindStorage,
		Err:  err,
	}
}

// NewConfigurationError creates a new PlanError with KindConfiguration.
func NewConfigurationError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewTimeoutError creates a new PlanError with KindTimeout.
func NewTimeoutError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindTimeout,
		Err:  err,
	}
}

// NewInternalError creates a new PlanError with KindInternal.
func NewInternalError(op string, err error) *PlanError {
	return &PlanError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "store", "connection"). If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
