// Package transport owns the single duplex WebSocket connection between a
// canvas session and the generation backend.
//
// The Manager moves through Disconnected → Connecting → Open and back,
// reconnecting with capped exponential backoff up to a bounded number of
// attempts. Connect is idempotent and safe to call from multiple call
// sites; at most one socket exists at a time. Once the retry budget is
// spent the manager stays disconnected until an explicit Connect.
//
// Send never queues: a message sent while the connection is not open is
// logged and discarded, and callers must tolerate that. Inbound frames are
// decoded once at this boundary; malformed payloads and unrecognized type
// tags are logged and dropped without closing the connection. Decoded
// messages are broadcast to subscribers in subscription order on the read
// goroutine, preserving transport delivery order.
package transport
