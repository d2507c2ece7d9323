package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad", http.StatusBadRequest)
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad" {
		t.Errorf("expected message 'bad', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("INVALID_INPUT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_Internal_Success(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if err.Retryable {
		t.Error("Internal should NOT be retryable by default")
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("audio_url", "must be a URL")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "audio_url" {
		t.Errorf("expected field=audio_url, got %v", err.Details["field"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := UploadFailed("no url").WithCause(cause)
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := MissingField("audioUrl").WithDetails(map[string]any{"item_index": 3})
	if err.Details["item_index"] != 3 {
		t.Errorf("expected item_index=3 in details")
	}
	if err.Details["field"] != "audioUrl" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestTranscriptionErrors_Messages(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		contains  string
		retryable bool
	}{
		{"UploadFailed", UploadFailed("Upload succeeded but no audio_url returned"), ErrCodeUploadFailed, "no audio_url", false},
		{"MalformedSubmission", MalformedSubmission(), ErrCodeMalformedSubmission, "No result_url or id", false},
		{"TranscriptionFailed", TranscriptionFailed("Invalid audio format"), ErrCodeTranscriptionFailed, "Transcription failed: Invalid audio format", false},
		{"TranscriptionTimeout", TranscriptionTimeout(600 * time.Second), ErrCodeTranscriptionTimeout, "timed out after 600 seconds", true},
		{"TranscriptionTimeoutFraction", TranscriptionTimeout(1500 * time.Millisecond), ErrCodeTranscriptionTimeout, "after 1.5 seconds", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if !strings.Contains(tc.err.Message, tc.contains) {
				t.Errorf("expected message containing %q, got %q", tc.contains, tc.err.Message)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestTranscriptionTimeout_Details(t *testing.T) {
	err := TranscriptionTimeout(2 * time.Second)
	if err.Details["timeout_ms"] != int64(2000) {
		t.Errorf("expected timeout_ms=2000, got %v", err.Details["timeout_ms"])
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("item 0: %w", TranscriptionFailed("boom"))
	if !HasCode(err, ErrCodeTranscriptionFailed) {
		t.Error("expected HasCode to find wrapped TRANSCRIPTION_FAILED")
	}
	if HasCode(err, ErrCodeTranscriptionTimeout) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode to be false for plain errors")
	}
}

func TestErrorCode_IsRetryableCode_Table(t *testing.T) {
	retryable := []ErrorCode{ErrCodeServiceUnavailable, ErrCodeTimeout, ErrCodeExternalService, ErrCodeTranscriptionTimeout}
	for _, code := range retryable {
		if !IsRetryableCode(code) {
			t.Errorf("expected %s to be retryable", code)
		}
	}

	nonRetryable := []ErrorCode{ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInternal, ErrCodeUploadFailed, ErrCodeMalformedSubmission, ErrCodeTranscriptionFailed}
	for _, code := range nonRetryable {
		if IsRetryableCode(code) {
			t.Errorf("expected %s to NOT be retryable", code)
		}
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := TranscriptionFailed("bad audio")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeTranscriptionFailed {
		t.Errorf("expected code TRANSCRIPTION_FAILED in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["service_message"] != "bad audio" {
		t.Error("expected service_message in response details")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", MalformedSubmission())

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeMalformedSubmission {
		t.Errorf("expected MALFORMED_SUBMISSION, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := UploadFailed("x")
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should return the wrapped AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal || got.Cause != plain {
		t.Errorf("expected INTERNAL_ERROR wrapping the plain error, got %+v", got)
	}
}
