package resolver

import "fmt"

// NotFoundError means the moniker was well-formed but no node on its ancestor
// chain declares a source binding.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no source binding found for %q", e.Path)
}

// AccessDeniedError means the request was rejected by the binding's access
// policy. EstimatedRows is always set so callers can explain why.
type AccessDeniedError struct {
	Message       string
	EstimatedRows int64
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s (estimated %d rows)", e.Message, e.EstimatedRows)
}

// ResolutionError covers anything else unexpected, such as a malformed
// binding configuration. It wraps the underlying cause.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution failed for %q: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
