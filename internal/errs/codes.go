// Package errs provides the bot's error taxonomy and the shared error
// handler. Every failure surfaced to a user passes through here so that
// internal detail never leaks into a reply.
package errs

// Code identifies a specific error condition. Codes are string-based for
// debuggability and natural JSON serialization, grouped by category.
type Code string

const (
	// General.

	// CodeUnknown is the fallback for failures outside the taxonomy.
	CodeUnknown Code = "UNKNOWN_ERROR"

	// CodeInternal indicates a programming defect inside the bot.
	CodeInternal Code = "INTERNAL_ERROR"

	// Command execution.

	// CodeCommandFailed indicates a command handler returned an error.
	CodeCommandFailed Code = "COMMAND_EXECUTION_FAILED"

	// CodeCommandNotFound indicates an interaction named an unregistered command.
	CodeCommandNotFound Code = "COMMAND_NOT_FOUND"

	// Validation.

	// CodeValidationFailed indicates a supplied option failed its constraints.
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// CodeMissingParameter indicates a required option was absent.
	CodeMissingParameter Code = "MISSING_PARAMETER"

	// Permission.

	// CodePermissionDenied indicates the requester lacks a required permission.
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// Rate limit.

	// CodeCooldownActive indicates the per-user command cooldown has not elapsed.
	CodeCooldownActive Code = "COOLDOWN_ACTIVE"

	// CodeRateLimited indicates the remote service rejected us for rate reasons.
	CodeRateLimited Code = "RATE_LIMITED"

	// Configuration.

	// CodeMissingConfig indicates a required configuration value is absent.
	CodeMissingConfig Code = "MISSING_CONFIGURATION"

	// CodeInvalidConfig indicates a configuration value failed to parse.
	CodeInvalidConfig Code = "INVALID_CONFIGURATION"

	// External service.

	// CodeServiceUnavailable indicates a transient remote failure.
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// CodeExternalFailure indicates a permanent remote failure.
	CodeExternalFailure Code = "EXTERNAL_SERVICE_ERROR"
)

// defaultSeverities maps codes to the severity used when a constructor does
// not set one explicitly.
var defaultSeverities = map[Code]Severity{
	CodeUnknown:            SeverityMedium,
	CodeInternal:           SeverityHigh,
	CodeCommandFailed:      SeverityMedium,
	CodeCommandNotFound:    SeverityLow,
	CodeValidationFailed:   SeverityLow,
	CodeMissingParameter:   SeverityLow,
	CodePermissionDenied:   SeverityLow,
	CodeCooldownActive:     SeverityLow,
	CodeRateLimited:        SeverityMedium,
	CodeMissingConfig:      SeverityCritical,
	CodeInvalidConfig:      SeverityCritical,
	CodeServiceUnavailable: SeverityMedium,
	CodeExternalFailure:    SeverityHigh,
}

func defaultSeverity(code Code) Severity {
	if s, ok := defaultSeverities[code]; ok {
		return s
	}
	return SeverityMedium
}
