package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// Executor is anything that can send a Request. *Adapter and provider
// middleware chains built on it both qualify.
type Executor interface {
	Execute(ctx context.Context, req Request) (*Response, error)
}

// Get performs a GET request and decodes the JSON response into T.
func Get[T any](ctx context.Context, ex Executor, path string) (*TypedResponse[T], error) {
	return doTyped[T](ctx, ex, http.MethodGet, path, nil)
}

// Post performs a POST request and decodes the JSON response into T.
func Post[T any](ctx context.Context, ex Executor, path string, body any) (*TypedResponse[T], error) {
	return doTyped[T](ctx, ex, http.MethodPost, path, body)
}

func doTyped[T any](ctx context.Context, ex Executor, method, path string, body any) (*TypedResponse[T], error) {
	resp, err := ex.Execute(ctx, Request{Method: method, Path: path, Body: body})
	if err != nil {
		return nil, err
	}

	var data T
	if err := decodeInto(resp.Body, &data); err != nil {
		return nil, NewDecodeError("unexpected response", resp.Body, err)
	}
	return &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Data:       data,
	}, nil
}

// DecodeObject parses a response body that must be a JSON object. Numbers
// are kept as json.Number so ids and counts round-trip unchanged.
func DecodeObject(body []byte) (map[string]any, error) {
	var obj map[string]any
	if err := decodeInto(body, &obj); err != nil {
		return nil, NewDecodeError("unexpected response", body, err)
	}
	if obj == nil {
		return nil, NewDecodeError("unexpected response", body, nil)
	}
	return obj, nil
}

func decodeInto(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
