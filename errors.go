package dkg

import (
	"encoding/hex"
	"fmt"
)

// ErrorKind is the flat enumeration of failure classes. Every error the
// library produces carries exactly one kind; callers dispatch on it with
// errors.Is against the sentinel values below.
type ErrorKind uint8

const (
	// KindMalformedInput marks a byte buffer of the wrong shape on
	// deserialization.
	KindMalformedInput ErrorKind = iota + 1
	// KindInvalidState marks an operation invoked on the wrong
	// polynomial variant or on a ceremony outside the permitted state.
	KindInvalidState
	// KindProofInvalid marks a failed Schnorr verification.
	KindProofInvalid
	// KindCommitmentMismatch marks a share that does not match the
	// dealer's polynomial commitment.
	KindCommitmentMismatch
	// KindInvalidArgument marks a precondition violation at the call
	// boundary, e.g. a zero index where a nonzero one is required.
	KindInvalidArgument
	// KindRandomness marks a failure of the secure random source.
	KindRandomness
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed_input"
	case KindInvalidState:
		return "invalid_state"
	case KindProofInvalid:
		return "proof_invalid"
	case KindCommitmentMismatch:
		return "commitment_mismatch"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRandomness:
		return "randomness_failure"
	default:
		return "unknown"
	}
}

// Error is the structured error type for the package. It pairs a kind
// with a message, optional context fields and an optional wrapped cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Context map[string]interface{}
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports kind equality, so errors.Is(err, ErrProofInvalid) matches
// any proof failure regardless of message or context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithContext returns a copy of the error with an added context field.
func (e *Error) WithContext(key string, value interface{}) *Error {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Kind: e.Kind, Message: e.Message, Context: ctx, cause: e.cause}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Context: e.Context, cause: cause}
}

// NewError creates a structured error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel values for errors.Is dispatch.
var (
	ErrMalformedInput     = NewError(KindMalformedInput, "malformed input")
	ErrInvalidState       = NewError(KindInvalidState, "invalid state")
	ErrProofInvalid       = NewError(KindProofInvalid, "schnorr proof verification failed")
	ErrCommitmentMismatch = NewError(KindCommitmentMismatch, "share does not match commitment")
	ErrInvalidArgument    = NewError(KindInvalidArgument, "invalid argument")
	ErrRandomness         = NewError(KindRandomness, "secure randomness unavailable")
)

// AbortError signals a protocol-level abort. It is produced only by the
// ceremony state machine, never by the pure verification functions, and
// is terminal: an aborted ceremony must not be re-run under the same id.
type AbortError struct {
	CeremonyID []byte
	State      CeremonyState
	Cause      *Error
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return fmt.Sprintf("ceremony %s aborted in state %s: %v",
		hex.EncodeToString(e.CeremonyID), e.State, e.Cause)
}

// Unwrap exposes the verification failure that triggered the abort.
func (e *AbortError) Unwrap() error {
	return e.Cause
}

// IsAbort reports whether err is a ceremony abort.
func IsAbort(err error) bool {
	_, ok := err.(*AbortError)
	return ok
}
