// Package middleware provides gin middleware shared by the backend's HTTP
// surface: CORS for the browser client and per-IP rate limiting.
package middleware
