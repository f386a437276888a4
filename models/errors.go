package models

// ErrorKind tags an Error so handlers can map it to an HTTP status without
// probing error shapes at runtime.
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindTransport  ErrorKind = "transport"
	ErrKindUnknown    ErrorKind = "unknown"
)

// Error is the tagged error produced at the service boundary. Message is safe
// to show to callers; Err keeps the underlying cause for diagnostics only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed or rejected input field.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrKindValidation, Message: message}
}

// NewNotFoundError reports a well-formed identifier with no matching row.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrKindNotFound, Message: message}
}

// NewTransportError wraps an infrastructure failure behind a safe message.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: ErrKindTransport, Message: message, Err: err}
}
