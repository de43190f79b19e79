// Package id provides centralized ID generation for screens and requests.
//
// IDs are prefixed UUIDv4 strings: the prefix makes logs readable and
// keeps the two namespaces from colliding, while the UUID body matches
// what browser clients generate for optimistic inserts.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// ScreenID identifies a screen on the canvas.
type ScreenID string

// RequestID identifies one generation request.
type RequestID string

const (
	screenPrefix  = "scr"
	requestPrefix = "req"
)

// NewScreenID generates a new screen ID.
func NewScreenID() ScreenID {
	return ScreenID(fmt.Sprintf("%s_%s", screenPrefix, uuid.NewString()))
}

// NewRequestID generates a new request ID.
func NewRequestID() RequestID {
	return RequestID(fmt.Sprintf("%s_%s", requestPrefix, uuid.NewString()))
}

func (id ScreenID) String() string  { return string(id) }
func (id RequestID) String() string { return string(id) }
