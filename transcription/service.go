package transcription

import (
	"context"

	"github.com/kbukum/gladiaflow/provider"
)

// Service is a transcription backend. Responses are returned as decoded
// JSON objects so callers can pass them through unchanged.
type Service interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Submit starts a job and returns the submission response.
	Submit(ctx context.Context, payload SubmissionPayload) (map[string]any, error)
	// Poll reads the job status at target, a URL or a path relative to
	// the service base URL.
	Poll(ctx context.Context, target string) (map[string]any, error)
	// Upload stores raw audio with the service and returns its audio URL.
	Upload(ctx context.Context, audio UploadAudio) (string, error)
}

// CredentialChecker is implemented by services that can explain a failed
// availability check.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context) error
}

// NewRegistry creates a registry for transcription services. Backends
// register a factory under their provider name.
func NewRegistry() *provider.Registry[Service] {
	return provider.NewRegistry[Service]()
}
