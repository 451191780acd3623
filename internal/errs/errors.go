package errs

import (
	"fmt"
	"time"
)

// Error extends the standard error interface with the structured fields the
// handler logs, counts, and renders to users. All taxonomy values implement
// it and remain compatible with errors.Is / errors.As / errors.Unwrap.
type Error interface {
	error

	// Code returns the stable machine-readable identifier.
	Code() Code

	// Severity returns how loudly this error should be reported.
	Severity() Severity

	// Context returns attached metadata. Never mutated after handling.
	Context() map[string]any

	// Timestamp returns when the error value was created.
	Timestamp() time.Time

	// Operational reports whether this is an expected, recoverable
	// condition as opposed to a programming defect.
	Operational() bool

	// UserMessage returns the curated text safe to show the requester.
	UserMessage() string

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error
}

// base is the common implementation embedded by every taxonomy type.
type base struct {
	code        Code
	severity    Severity
	message     string
	context     map[string]any
	timestamp   time.Time
	operational bool
	cause       error
}

func newBase(code Code, message string, cause error) base {
	return base{
		code:        code,
		severity:    defaultSeverity(code),
		message:     message,
		context:     nil,
		timestamp:   time.Now().UTC(),
		operational: true,
		cause:       cause,
	}
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *base) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *base) Code() Code              { return e.code }
func (e *base) Severity() Severity      { return e.severity }
func (e *base) Message() string         { return e.message }
func (e *base) Context() map[string]any { return e.context }
func (e *base) Timestamp() time.Time    { return e.timestamp }
func (e *base) Operational() bool       { return e.operational }
func (e *base) Unwrap() error           { return e.cause }

// UserMessage on the base type is deliberately generic; subtypes override it
// with text derived from their own fields.
func (e *base) UserMessage() string {
	return "Something went wrong while processing your request. Please try again later."
}

// withContext merges extra fields into the context, copying on first write so
// a shared map is never aliased.
func (e *base) withContext(extra map[string]any) {
	if len(extra) == 0 {
		return
	}
	merged := make(map[string]any, len(e.context)+len(extra))
	for k, v := range e.context {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	e.context = merged
}

// LogFields flattens the full value for structured logging, including the
// wrapped-cause summary.
func LogFields(err Error) map[string]any {
	fields := map[string]any{
		"code":        string(err.Code()),
		"severity":    string(err.Severity()),
		"operational": err.Operational(),
		"timestamp":   err.Timestamp().Format(time.RFC3339),
	}
	for k, v := range err.Context() {
		fields[k] = v
	}
	if cause := err.Unwrap(); cause != nil {
		fields["cause"] = cause.Error()
	}
	return fields
}

// New creates a generic taxonomy error with the given code.
func New(code Code, message string) *GenericError {
	return &GenericError{base: newBase(code, message, nil)}
}

// Newf creates a generic taxonomy error with a formatted message.
func Newf(code Code, format string, args ...any) *GenericError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps any failure as a taxonomy error with the given code. The
// original error stays reachable through Unwrap.
func Wrap(err error, code Code, message string) *GenericError {
	return &GenericError{base: newBase(code, message, err)}
}

// GenericError is a taxonomy error with no subtype-specific fields.
type GenericError struct {
	base
}

// WithSeverity overrides the default severity for the code.
func (e *GenericError) WithSeverity(s Severity) *GenericError {
	e.severity = s
	return e
}

// WithContext attaches metadata and returns the error for chaining.
func (e *GenericError) WithContext(key string, value any) *GenericError {
	e.withContext(map[string]any{key: value})
	return e
}
