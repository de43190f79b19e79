// Package config loads application configuration from environment
// variables with sane defaults, covering the HTTP server, the canvas
// engine's upstream endpoint and reconnect policy, the generation
// provider, rate limiting, and logging.
package config
