// Package ws exposes the generation backend over a WebSocket endpoint.
// Each connection gets a welcome banner and a read loop; generate_screens
// requests are validated and then processed screen by screen, emitting a
// loading update before generation starts and a ready or error update when
// it finishes. Screens within one request are generated sequentially so
// updates arrive in a stable order.
package ws
