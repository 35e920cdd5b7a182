// Package api implements the HTTP surface of the Vital Stream backend.
//
// It exposes the static hello endpoints, the database diagnostic endpoint,
// Prometheus metrics, a health endpoint, and hands /ws/telemetry requests to
// the streaming handler. All routes pass through a permissive CORS layer
// matching the original deployment.
package api
