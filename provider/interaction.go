package provider

import "context"

// RequestResponse represents a provider that takes one input and returns one output.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Closeable is implemented by providers that hold resources requiring
// explicit cleanup.
type Closeable interface {
	Close(ctx context.Context) error
}
