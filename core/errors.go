package core

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying why a turn or pipeline failed. Backends wrap
// their transport errors with one of these kinds (via BackendError) so
// callers can branch with errors.Is without depending on provider SDKs.
var (
	// ErrBackendUnavailable indicates a transport or connection failure
	// talking to the chat backend (network failure, non-2xx status).
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendTimeout indicates no response arrived within the configured
	// bound.
	ErrBackendTimeout = errors.New("backend timeout")

	// ErrMalformedResponse indicates the backend answered but the response
	// carried no usable text content. Not retryable.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrEmptyPipeline is returned when a pipeline is constructed with zero
	// agents. Raised at construction, before any run attempt.
	ErrEmptyPipeline = errors.New("pipeline requires at least one agent")

	// ErrDuplicateAgent is returned when two agents in a pipeline share a
	// name; names are required for deterministic output attribution.
	ErrDuplicateAgent = errors.New("duplicate agent name in pipeline")
)

// BackendError pairs a taxonomy kind with the underlying provider error.
// errors.Is matches both the kind and the cause.
type BackendError struct {
	Kind  error // one of ErrBackendUnavailable, ErrBackendTimeout, ErrMalformedResponse
	Cause error
}

// NewBackendError wraps cause under the given kind. Cause may be nil when
// the classification itself is the whole story (e.g. empty completion).
func NewBackendError(kind, cause error) *BackendError {
	return &BackendError{Kind: kind, Cause: cause}
}

func (e *BackendError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Cause.Error())
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *BackendError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// TurnError annotates a failed agent invocation with the offending agent's
// name and pipeline position. The pipeline aborts on the first TurnError;
// no later turn is attempted.
type TurnError struct {
	Agent string
	Index int
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("agent %q (position %d): %s", e.Agent, e.Index, e.Err.Error())
}

// Unwrap returns the underlying turn failure.
func (e *TurnError) Unwrap() error { return e.Err }
