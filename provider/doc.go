// Package provider implements a small generic provider framework: named
// factories in a Registry, and middleware that wraps request/response
// providers with logging, tracing and metrics.
//
// # Middleware
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out](spanName),
//	)(rawProvider)
//
// # Registry
//
//	reg := provider.NewRegistry[transcription.Service]()
//	reg.RegisterFactory("gladia", gladia.Factory(cfg.Gladia))
//	svc, err := reg.Create(cfg.Transcription.Provider, nil)
package provider
