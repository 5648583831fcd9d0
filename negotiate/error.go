package negotiate

import "github.com/pkg/errors"

// Reason codes distinguish why negotiation failed, so callers can
// decide whether the failure is worth retrying (e.g. a transient
// downstream renegotiation) or fatal to the pad.
type Reason int

const (
	// ReasonFormatMismatch means no input format could be elected as the
	// output format: none is accepted downstream, or an input carries
	// alpha and downstream accepts no alpha-carrying input format.
	ReasonFormatMismatch Reason = iota
	// ReasonGeometryFixed means the output geometry is already fixed
	// (downstream accepted a specific size) and a pad's requested size
	// cannot be accommodated.
	ReasonGeometryFixed
	// ReasonParOrInterlaceMismatch means a pad's pixel-aspect-ratio or
	// interlace mode disagrees with an already-fixed output, which is
	// rejected without attempting renegotiation (spec.md §9).
	ReasonParOrInterlaceMismatch
)

// Error is the Negotiator's distinguished failure type, wrapping an
// underlying cause with github.com/pkg/errors so callers retain a
// stack trace from the point of failure, the same way device.MultiError
// aggregates device configuration failures in the teacher.
type Error struct {
	Reason Reason
	cause  error
}

// NewError wraps cause as a negotiate.Error with the given reason.
func NewError(reason Reason, cause error) *Error {
	return &Error{Reason: reason, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	return e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}
