package errs

import (
	"fmt"
	"strings"
)

// CommandError reports a failure inside a command handler.
type CommandError struct {
	base
	CommandName string
	// UserMsg, when set, replaces the generic user-facing text.
	UserMsg string
}

// NewCommand wraps a handler failure for the named command.
func NewCommand(commandName string, cause error) *CommandError {
	e := &CommandError{
		base:        newBase(CodeCommandFailed, fmt.Sprintf("command %q failed", commandName), cause),
		CommandName: commandName,
	}
	e.withContext(map[string]any{"command": commandName})
	return e
}

func (e *CommandError) UserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return fmt.Sprintf("The `/%s` command failed. Please try again later.", e.CommandName)
}

// ValidationError reports an option value that failed its declared schema.
type ValidationError struct {
	base
	Field    string
	Expected string
	Received any
}

// NewValidation reports a constraint failure on the named field.
func NewValidation(field, expected string, received any, reason string) *ValidationError {
	e := &ValidationError{
		base:     newBase(CodeValidationFailed, fmt.Sprintf("invalid value for %q: %s", field, reason), nil),
		Field:    field,
		Expected: expected,
		Received: received,
	}
	e.withContext(map[string]any{"field": field, "expected": expected})
	return e
}

// NewMissingParameter reports a required option that was absent or null.
func NewMissingParameter(field, expected string) *ValidationError {
	e := &ValidationError{
		base:     newBase(CodeMissingParameter, fmt.Sprintf("parameter %q is required", field), nil),
		Field:    field,
		Expected: expected,
	}
	e.withContext(map[string]any{"field": field, "expected": expected})
	return e
}

func (e *ValidationError) UserMessage() string {
	if e.code == CodeMissingParameter {
		return fmt.Sprintf("The `%s` parameter is required.", e.Field)
	}
	return fmt.Sprintf("Invalid value for `%s`: %s.", e.Field, e.message)
}

// PermissionError reports a requester missing required permissions.
type PermissionError struct {
	base
	Required []string
	Held     []string
}

// NewPermission lists the permissions the command requires and, when known,
// the permissions the requester actually holds.
func NewPermission(required, held []string) *PermissionError {
	e := &PermissionError{
		base:     newBase(CodePermissionDenied, "missing required permissions", nil),
		Required: required,
		Held:     held,
	}
	e.withContext(map[string]any{"required": required})
	return e
}

func (e *PermissionError) UserMessage() string {
	return fmt.Sprintf("You need the following permissions to run this command: `%s`.",
		strings.Join(e.Required, "`, `"))
}

// CooldownError reports an invocation inside the per-user cooldown window.
type CooldownError struct {
	base
	CommandName      string
	RemainingSeconds int
}

// NewCooldown reports the whole seconds remaining before the command can run again.
func NewCooldown(commandName string, remainingSeconds int) *CooldownError {
	e := &CooldownError{
		base:             newBase(CodeCooldownActive, fmt.Sprintf("command %q on cooldown", commandName), nil),
		CommandName:      commandName,
		RemainingSeconds: remainingSeconds,
	}
	e.withContext(map[string]any{"command": commandName, "remaining_seconds": remainingSeconds})
	return e
}

func (e *CooldownError) UserMessage() string {
	return fmt.Sprintf("Please wait %d more second(s) before using `/%s` again.",
		e.RemainingSeconds, e.CommandName)
}

// ConfigError reports a missing or invalid configuration value. Always
// critical; startup aborts on it.
type ConfigError struct {
	base
	Key string
}

// NewConfig reports a configuration failure for the offending key.
func NewConfig(key, reason string, cause error) *ConfigError {
	code := CodeInvalidConfig
	if cause == nil && reason == "" {
		reason = "value is not set"
	}
	if strings.Contains(reason, "not set") {
		code = CodeMissingConfig
	}
	e := &ConfigError{
		base: newBase(code, fmt.Sprintf("configuration %q: %s", key, reason), cause),
		Key:  key,
	}
	e.withContext(map[string]any{"key": key})
	return e
}

func (e *ConfigError) UserMessage() string {
	return "The bot is misconfigured. Please contact the administrator."
}

// ExternalError reports a failure talking to a remote service.
type ExternalError struct {
	base
	Service    string
	StatusCode int
	Retryable  bool
}

// NewExternal wraps a remote-service failure. Retryable failures are
// surfaced to users as transient.
func NewExternal(service string, statusCode int, retryable bool, cause error) *ExternalError {
	code := CodeExternalFailure
	if retryable {
		code = CodeServiceUnavailable
	}
	e := &ExternalError{
		base:       newBase(code, fmt.Sprintf("service %q request failed", service), cause),
		Service:    service,
		StatusCode: statusCode,
		Retryable:  retryable,
	}
	e.withContext(map[string]any{"service": service, "status_code": statusCode, "retryable": retryable})
	return e
}

func (e *ExternalError) UserMessage() string {
	if e.Retryable {
		return "The service is temporarily unavailable. Please try again later."
	}
	return "An external service rejected the request. Please contact the administrator."
}
