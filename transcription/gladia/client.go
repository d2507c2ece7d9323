// Package gladia implements transcription.Service for the Gladia v2 API.
package gladia

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/gladiaflow/component"
	"github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/httpclient"
	"github.com/kbukum/gladiaflow/logger"
	"github.com/kbukum/gladiaflow/observability"
	"github.com/kbukum/gladiaflow/provider"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/transcription"
	"github.com/kbukum/gladiaflow/version"
)

const (
	// ProviderName is the registered name for the Gladia service.
	ProviderName = "gladia"
	// APIKeyHeader carries the API key on every call.
	APIKeyHeader = "x-gladia-key"

	transcriptionPath = "/v2/transcription"
	uploadPath        = "/v2/upload"
	uploadField       = "audio"
)

type transport = provider.RequestResponse[httpclient.Request, *httpclient.Response]

// Client talks to the Gladia API through an httpclient.Adapter wrapped in
// logging, metrics and tracing middleware.
type Client struct {
	cfg     Config
	adapter *httpclient.Adapter
	api     transport
}

// Option configures a Client.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.JobMetrics
	http    []httpclient.Option
}

// WithLogger sets the logger for API calls.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records every API call on m.
func WithMetrics(m *observability.JobMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPOptions passes options through to the underlying adapter.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.http = append(o.http, opts...) }
}

// NewClient creates a Gladia client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get(ProviderName)
	}

	adapter, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, APIKeyHeader),
		Headers: map[string]string{"User-Agent": version.UserAgent("gladiaflow")},
	}, o.http...)
	if err != nil {
		return nil, fmt.Errorf("gladia: create http client: %w", err)
	}

	chain := provider.Chain(
		provider.WithLogging[httpclient.Request, *httpclient.Response](o.log),
		provider.WithMetrics[httpclient.Request, *httpclient.Response](o.metrics),
		provider.WithTracing[httpclient.Request, *httpclient.Response](spanName),
	)

	return &Client{cfg: cfg, adapter: adapter, api: chain(adapter)}, nil
}

// Factory returns a provider.Factory that creates Gladia clients from base.
// The generic config map may override api_key, base_url and timeout.
func Factory(base Config, opts ...Option) provider.Factory[transcription.Service] {
	return func(m map[string]any) (transcription.Service, error) {
		cfg := base
		if v, ok := m["api_key"].(string); ok {
			cfg.APIKey = v
		}
		if v, ok := m["base_url"].(string); ok {
			cfg.BaseURL = v
		}
		switch v := m["timeout"].(type) {
		case time.Duration:
			cfg.Timeout = v
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("gladia: invalid timeout %q: %w", v, err)
			}
			cfg.Timeout = d
		}
		return NewClient(cfg, opts...)
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// CheckCredentials runs the credential test: an authenticated list request
// must succeed. The transport error is returned unchanged.
func (c *Client) CheckCredentials(ctx context.Context) error {
	_, err := httpclient.Get[any](ctx, c.api, transcriptionPath)
	return err
}

// IsAvailable reports whether the credential test passes.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.CheckCredentials(ctx) == nil
}

// Submit starts a transcription job.
func (c *Client) Submit(ctx context.Context, payload transcription.SubmissionPayload) (map[string]any, error) {
	resp, err := httpclient.Post[map[string]any](ctx, c.api, transcriptionPath, payload)
	if err != nil {
		return nil, err
	}
	// Only a literal null decodes into a nil map.
	if resp.Data == nil {
		return nil, httpclient.NewDecodeError("unexpected response", []byte("null"), nil)
	}
	return resp.Data, nil
}

// Poll reads the job at target. Absolute result URLs are requested as-is
// with the same credentials.
func (c *Client) Poll(ctx context.Context, target string) (map[string]any, error) {
	resp, err := c.api.Execute(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   target,
	})
	if err != nil {
		return nil, err
	}
	return httpclient.DecodeObject(resp.Body)
}

// Upload sends audio as multipart field "audio" and returns the hosted
// audio URL. The API key header is set on the request itself.
func (c *Client) Upload(ctx context.Context, audio transcription.UploadAudio) (string, error) {
	fileName := audio.FileName
	if fileName == "" {
		fileName = storage.DefaultFileName
	}

	resp, err := c.api.Execute(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    uploadPath,
		Headers: map[string]string{APIKeyHeader: c.cfg.APIKey},
		Auth:    &httpclient.AuthConfig{Type: httpclient.AuthNone},
		Body: &httpclient.MultipartBody{Files: []httpclient.FileField{{
			FieldName:   uploadField,
			FileName:    fileName,
			ContentType: audio.MimeType,
			Data:        audio.Data,
		}}},
	})
	if err != nil {
		return "", err
	}

	obj, err := httpclient.DecodeObject(resp.Body)
	if err != nil {
		return "", httpclient.NewDecodeError("upload failed", resp.Body, err)
	}
	url, _ := obj["audio_url"].(string)
	if url == "" {
		return "", errors.UploadFailed("Upload succeeded but no audio_url returned")
	}
	return url, nil
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

// Describe returns summary info for the startup display.
func (c *Client) Describe() component.Description {
	return component.Description{
		Name:    "Gladia API",
		Type:    "transcription",
		Details: c.cfg.BaseURL + " timeout=" + c.cfg.Timeout.String(),
	}
}

func spanName(req httpclient.Request) string {
	switch {
	case req.Path == uploadPath:
		return "gladia.upload"
	case req.Method == http.MethodPost:
		return "gladia.submit"
	case strings.HasPrefix(req.Path, transcription.StatusPathPrefix) || strings.HasPrefix(req.Path, "http"):
		return "gladia.poll"
	default:
		return "gladia." + strings.ToLower(req.Method)
	}
}

var (
	_ transcription.Service           = (*Client)(nil)
	_ transcription.CredentialChecker = (*Client)(nil)
	_ provider.Closeable              = (*Client)(nil)
	_ component.Describable           = (*Client)(nil)
)
