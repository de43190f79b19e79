// Command server runs the Screenloom generation backend: a WebSocket
// endpoint that turns screen requests into HTML via an LLM provider, plus
// health and metrics endpoints.
package main
