// Package monitoring exposes Prometheus metrics for the generation
// backend: WebSocket connection and message counts, per-status screen
// generation outcomes, and generation latency, plus gin middleware for
// HTTP request accounting.
package monitoring
