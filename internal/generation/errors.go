package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the generation package. Every *Error carries
// exactly one of them as its Kind.
var (
	// ErrInvalidRequest is returned when required caller input is missing.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrBackendUnavailable is returned when no backend is configured for
	// the capability a task needs.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrTransportFailure is returned when the backend call itself fails
	// (network, auth, rate limit, cancellation).
	ErrTransportFailure = errors.New("backend transport failure")

	// ErrEmptyResponse is returned when the backend answered without content.
	ErrEmptyResponse = errors.New("empty response from backend")

	// ErrMalformedResponse is returned when the content is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response from backend")

	// ErrSchemaViolation is returned when the JSON does not satisfy the
	// product schema or the task's required fields.
	ErrSchemaViolation = errors.New("response violates product schema")
)

// Error describes a failed generation. Only the fields relevant to Kind
// are populated.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Task is the task that failed.
	Task Task

	// Capability is the capability that was required (BackendUnavailable).
	Capability Capability

	// Backend is the name of the backend that was invoked, if any.
	Backend string

	// FinishReason is the completion/stop reason reported by the backend.
	FinishReason string

	// Raw is the raw text returned by the backend.
	Raw string

	// Fields lists the fields that failed validation (SchemaViolation, InvalidRequest).
	Fields []string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Task != "" {
		fmt.Fprintf(&b, " (task=%s", e.Task)
		if e.Backend != "" {
			fmt.Fprintf(&b, ", backend=%s", e.Backend)
		}
		b.WriteString(")")
	}
	if e.Capability != "" {
		fmt.Fprintf(&b, ": no configured backend with %s capability", e.Capability)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, ": fields [%s]", strings.Join(e.Fields, ", "))
	}
	if e.FinishReason != "" {
		fmt.Fprintf(&b, "; finish reason: %s", e.FinishReason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// AsError extracts the *Error from err's chain, if present.
func AsError(err error) (*Error, bool) {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

func invalidRequestError(task Task, field string, cause error) *Error {
	return &Error{Kind: ErrInvalidRequest, Task: task, Fields: []string{field}, Err: cause}
}

func backendUnavailableError(task Task, capability Capability, reason string) *Error {
	var cause error
	if reason != "" {
		cause = errors.New(reason)
	}
	return &Error{Kind: ErrBackendUnavailable, Task: task, Capability: capability, Err: cause}
}
