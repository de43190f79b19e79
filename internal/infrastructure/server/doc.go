// Package server assembles the HTTP surface: gin router, middleware stack,
// the WebSocket generation endpoint, health, and metrics.
package server
