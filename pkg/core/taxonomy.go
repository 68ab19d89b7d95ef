package core

import "errors"

// Kind identifies one of the runtime's error categories (see spec §7). Kind is
// layered on top of FrameworkError's Code field rather than replacing it, so
// existing error-code based handling keeps working while callers that care
// about the runtime taxonomy can switch on Kind directly.
type Kind string

const (
	KindUnknownCommand     Kind = "UnknownCommand"
	KindMissingParam       Kind = "MissingParam"
	KindBadParam           Kind = "BadParam"
	KindNotInitialized     Kind = "NotInitialized"
	KindInferenceFailed    Kind = "InferenceFailed"
	KindTimeout            Kind = "Timeout"
	KindCancelled          Kind = "Cancelled"
	KindInvalidAudio       Kind = "InvalidAudio"
	KindAdapterNotFound    Kind = "AdapterNotFound"
	KindAdapterIncompatible Kind = "AdapterIncompatible"
	KindAllocationDenied   Kind = "AllocationDenied"
	KindOverflowIndication Kind = "OverflowIndication"
)

// KindError is a FrameworkError specialized with a taxonomy Kind. It is the
// error type every CORE subsystem (runtime, sentinel, inference, voice
// pipeline) returns so that a single switch at the dispatcher boundary can
// translate any failure into the command envelope's {success:false, error}
// shape.
type KindError struct {
	*FrameworkError
	K Kind
}

// NewKindError builds a KindError for operation op, category kind, with a
// human-readable message and optional wrapped cause.
func NewKindError(op string, kind Kind, message string, cause error) *KindError {
	return &KindError{
		FrameworkError: &FrameworkError{
			Op:      op,
			Code:    string(kind),
			Message: message,
			Err:     cause,
			Context: make(map[string]any),
		},
		K: kind,
	}
}

// Is reports whether target is a KindError (or wraps one) with the same Kind.
func (e *KindError) Is(target error) bool {
	var t *KindError
	if errors.As(target, &t) {
		return e.K == t.K
	}
	return false
}

// KindOf returns the Kind carried by err, if err is or wraps a KindError.
func KindOf(err error) (Kind, bool) {
	var k *KindError
	if errors.As(err, &k) {
		return k.K, true
	}
	return "", false
}

// IsKind reports whether err is or wraps a KindError with the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
