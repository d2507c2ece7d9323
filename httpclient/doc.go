// Package httpclient is the transport layer for outbound API calls: base
// URL resolution, default headers, API key auth, JSON and multipart bodies,
// and classification of failures into typed *Error values.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "gladia",
//	    BaseURL: "https://api.gladia.io",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "x-gladia-key"),
//	})
//	obj, err := httpclient.DecodeObject(resp.Body)
//
// Adapter implements provider.RequestResponse so callers can wrap it with
// provider middleware.
package httpclient
