// Package middleware holds the Gin middleware applied by the HTTP server:
// panic recovery, request identifiers, body size limits and request logging.
package middleware
