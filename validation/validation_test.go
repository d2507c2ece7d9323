package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/gladiaflow/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "https://api.gladia.io", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Required("base_url", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors = %v, want %v", v.HasErrors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"url", "binaryData"}
	if New().OneOf("audioSource", "url", allowed).HasErrors() {
		t.Error("expected no error for allowed value")
	}
	if New().OneOf("audioSource", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("audioSource", "ftp", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}
	if !strings.Contains(v.Errors()[0].Message, "url, binaryData") {
		t.Errorf("message = %q", v.Errors()[0].Message)
	}
}

func TestValidatorPositiveAndCustom(t *testing.T) {
	v := New().Positive("timeout", 0).Custom(false, "max", "too small")
	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
	if New().Positive("timeout", 0.5).HasErrors() {
		t.Error("0.5 should be positive")
	}
}

func TestValidatorValidate(t *testing.T) {
	if err := New().Validate(); err != nil {
		t.Errorf("expected nil for no errors, got %v", err)
	}

	err := New().Required("a", "").Required("b", "").Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Message != "a: is required; b: is required" {
		t.Errorf("message = %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("details fields = %#v", appErr.Details["fields"])
	}
}

type sample struct {
	Source  string   `json:"audioSource" validate:"required,oneof=url binaryData"`
	URL     string   `json:"audioUrl" validate:"required_if=Source url,omitempty,url"`
	Formats []string `json:"subtitlesFormats" validate:"omitempty,dive,oneof=srt vtt"`
	Timeout *float64 `json:"pollingTimeout" validate:"omitempty,gte=0"`
}

func TestValidateStruct(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name      string
		in        sample
		wantErr   bool
		wantField string
	}{
		{"valid url", sample{Source: "url", URL: "https://x.test/a.wav"}, false, ""},
		{"valid binary", sample{Source: "binaryData"}, false, ""},
		{"missing source", sample{}, true, "audioSource"},
		{"bad source", sample{Source: "ftp"}, true, "audioSource"},
		{"url required for url source", sample{Source: "url"}, true, "audioUrl"},
		{"malformed url", sample{Source: "url", URL: "not a url"}, true, "audioUrl"},
		{"bad subtitle format", sample{Source: "binaryData", Formats: []string{"srt", "txt"}}, true, "subtitlesFormats[1]"},
		{"negative timeout", sample{Source: "binaryData", Timeout: &neg}, true, "pollingTimeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantField) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantField)
			}
		})
	}
}
