// Package protocol defines the wire envelopes exchanged between the canvas
// engine and the generation backend.
//
// Every frame is a JSON object with a "type" tag. Decode turns raw bytes
// into one of the known variants exactly once at the connection boundary,
// so nothing deeper in the system inspects type tags. Frames with an
// unrecognized tag decode into Unknown, letting callers log and discard
// them in one place without closing the connection.
//
// Message Types (Client → Server):
//   - generate_screens: request generation for a batch of screens
//
// Message Types (Server → Client):
//   - screen_update: per-screen lifecycle event (loading/ready/error)
//   - error: failure unrelated to a specific screen
//   - system: connection housekeeping (welcome banner)
package protocol
