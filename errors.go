package frost

import (
	"fmt"
)

// ErrorKind classifies a FROST error. Every failure surfaced by this
// package belongs to exactly one kind, so callers can dispatch on the
// class of failure without parsing messages.
type ErrorKind string

const (
	// KindInvalidInput covers malformed host input: wrong lengths, a zero
	// identifier, an out-of-range participant count, duplicate identifiers,
	// key material that conflicts with the session's curve.
	KindInvalidInput ErrorKind = "invalid_input"

	// KindInvalidPoint covers compressed encodings that fail decompression
	// or the curve-membership check.
	KindInvalidPoint ErrorKind = "invalid_point"

	// KindArithmeticFailure covers internal arithmetic conditions that should
	// never occur for valid inputs: inversion of zero, square root of a
	// non-residue, randomness source failure.
	KindArithmeticFailure ErrorKind = "arithmetic_failure"

	// KindProtocolViolation covers operations invoked in the wrong session
	// state, or a commitment list that omits our own identifier or
	// carries substituted commitments for it.
	KindProtocolViolation ErrorKind = "protocol_violation"

	// KindNotProvisioned covers operations that require a stored key share
	// when none is present.
	KindNotProvisioned ErrorKind = "not_provisioned"

	// KindUserRejected covers an explicit denial from the confirmation
	// capability.
	KindUserRejected ErrorKind = "user_rejected"
)

// FROSTError is the structured error type used throughout the package.
// It carries a kind, a stable code, a human-readable message and an
// optional wrapped cause.
type FROSTError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FROSTError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *FROSTError) Unwrap() error {
	return e.Cause
}

// Is matches two FROSTErrors by code, so errors.Is works against the
// package sentinels regardless of attached causes.
func (e *FROSTError) Is(target error) bool {
	t, ok := target.(*FROSTError)
	return ok && t.Code == e.Code
}

// WithCause returns a copy of the error carrying the given cause.
func (e *FROSTError) WithCause(cause error) *FROSTError {
	return &FROSTError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
	}
}

// NewFROSTError creates a new structured error.
func NewFROSTError(kind ErrorKind, code, message string) *FROSTError {
	return &FROSTError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// KindOf returns the kind of err if it is a FROSTError, or an empty
// kind otherwise.
func KindOf(err error) ErrorKind {
	if fe, ok := err.(*FROSTError); ok {
		return fe.Kind
	}
	return ""
}

// Input validation errors
var (
	ErrInvalidLength = NewFROSTError(
		KindInvalidInput, "INVALID_LENGTH",
		"input has wrong length")

	ErrZeroIdentifier = NewFROSTError(
		KindInvalidInput, "ZERO_IDENTIFIER",
		"participant identifier must be non-zero")

	ErrScalarEncoding = NewFROSTError(
		KindInvalidInput, "NONCANONICAL_SCALAR",
		"scalar encoding is not canonical")

	ErrIdentifierEncoding = NewFROSTError(
		KindInvalidInput, "IDENTIFIER_ENCODING",
		"participant identifier is not canonically encoded")

	ErrDuplicateIdentifier = NewFROSTError(
		KindInvalidInput, "DUPLICATE_IDENTIFIER",
		"duplicate participant identifier in signing set")

	ErrParticipantCount = NewFROSTError(
		KindInvalidInput, "PARTICIPANT_COUNT",
		"participant count outside supported range")

	ErrCurveMismatch = NewFROSTError(
		KindInvalidInput, "CURVE_MISMATCH",
		"key material does not match the configured curve")

	ErrUnsupportedCurve = NewFROSTError(
		KindInvalidInput, "UNSUPPORTED_CURVE",
		"curve type is not supported")
)

// Point errors
var (
	ErrInvalidPoint = NewFROSTError(
		KindInvalidPoint, "INVALID_POINT",
		"compressed point failed decompression")

	ErrNotOnCurve = NewFROSTError(
		KindInvalidPoint, "NOT_ON_CURVE",
		"decompressed coordinates do not satisfy the curve equation")
)

// Arithmetic errors
var (
	ErrZeroInverse = NewFROSTError(
		KindArithmeticFailure, "ZERO_INVERSE",
		"modular inversion of zero")

	ErrNotSquare = NewFROSTError(
		KindArithmeticFailure, "NOT_SQUARE",
		"square root of a quadratic non-residue")

	ErrRandomSource = NewFROSTError(
		KindArithmeticFailure, "RANDOM_SOURCE",
		"random source failed")
)

// Protocol errors
var (
	ErrWrongState = NewFROSTError(
		KindProtocolViolation, "WRONG_STATE",
		"operation not permitted in current session state")

	ErrSelfNotInList = NewFROSTError(
		KindProtocolViolation, "SELF_NOT_IN_LIST",
		"own identifier not present in commitment list")

	ErrCommitmentMismatch = NewFROSTError(
		KindProtocolViolation, "COMMITMENT_MISMATCH",
		"own entry in commitment list does not match generated commitments")
)

// Provisioning errors
var (
	ErrNoKeys = NewFROSTError(
		KindNotProvisioned, "NO_KEYS",
		"no key share provisioned")

	ErrUserRejected = NewFROSTError(
		KindUserRejected, "USER_REJECTED",
		"user rejected the operation")
)
