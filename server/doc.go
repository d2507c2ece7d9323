// Package server exposes the transcription connector over HTTP using Gin.
//
// Routes:
//
//   - POST /v1/executions: run a batch of items and return their results
//   - GET /health: aggregated component health, including the credential test
//   - GET /ready: readiness check
//   - GET /info: build and version information
//
// Middleware (server/middleware) covers panic recovery, request IDs, body
// size limits and request logging.
package server
