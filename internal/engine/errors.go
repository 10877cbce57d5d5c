package engine

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced model, option, or configuration id
// is absent from its store. It propagates to the caller; missing references
// are never silently dropped.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// StoreUnavailableError reports that a catalog or rule fetch failed. A
// validation pass that hits one must surface it as a hard error: an empty
// issue list only ever means "no rules were violated", never "rules could
// not be fetched".
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedDataError reports a single bad record: an option missing
// classification fields, or a rule naming a spec unknown to the schema.
// Malformed records are logged and skipped so the remaining groups stay
// checkable; they do not abort the pass.
type MalformedDataError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %s %q: %s", e.Kind, e.ID, e.Reason)
}

// IsNotFound returns true if the error is a NotFoundError, unwrapping as needed.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStoreUnavailable returns true if the error is a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var su *StoreUnavailableError
	return errors.As(err, &su)
}
