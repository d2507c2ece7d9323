package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Transcription job errors
const (
	// ErrCodeUploadFailed indicates the audio upload returned no usable URL.
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
	// ErrCodeMalformedSubmission indicates the submission returned neither an id nor a result URL.
	ErrCodeMalformedSubmission ErrorCode = "MALFORMED_SUBMISSION"
	// ErrCodeTranscriptionFailed indicates the service reported a terminal error status.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeTranscriptionTimeout indicates polling exhausted its time budget.
	ErrCodeTranscriptionTimeout ErrorCode = "TRANSCRIPTION_TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// None of the job errors are retried internally; a timed-out job may
// still finish on the service side, so callers may choose to resubmit.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable:   true,
	ErrCodeTimeout:              true,
	ErrCodeExternalService:      true,
	ErrCodeTranscriptionTimeout: true,
	ErrCodeInternal:             false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
