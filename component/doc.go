// Package component defines lifecycle-managed services and a registry that
// starts them in order, stops them in reverse and aggregates their health.
//
// The gladia client, the HTTP server and the telemetry exporters are each
// wrapped as a Component by the gladiaflow binary.
package component
