// Package utils holds request validation limits shared by the WebSocket
// handler and the generation pipeline.
package utils

import (
	"fmt"
	"unicode/utf8"
)

// Payload limits. Oversized requests are rejected before any provider
// call is made.
const (
	MaxPromptLength      = 16 * 1024
	MaxScreensPerRequest = 24
	MaxNameLength        = 256
	MaxDescriptionLength = 2048
	MaxFrameSize         = 1 * 1024 * 1024 // 1MB inbound ws frame
)

// ValidatePrompt checks a generation prompt for size and encoding.
func ValidatePrompt(prompt string) error {
	if !utf8.ValidString(prompt) {
		return fmt.Errorf("prompt is not valid UTF-8")
	}
	if len(prompt) > MaxPromptLength {
		return fmt.Errorf("prompt length %d exceeds maximum %d", len(prompt), MaxPromptLength)
	}
	return nil
}

// ValidateScreenCount bounds the number of screens in one request.
func ValidateScreenCount(count int) error {
	if count == 0 {
		return fmt.Errorf("request contains no screens")
	}
	if count > MaxScreensPerRequest {
		return fmt.Errorf("screen count %d exceeds maximum %d", count, MaxScreensPerRequest)
	}
	return nil
}

// ValidateScreenFields bounds the per-screen name and description.
func ValidateScreenFields(name, description string) error {
	if name == "" {
		return fmt.Errorf("screen name is empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("screen name length %d exceeds maximum %d", len(name), MaxNameLength)
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description length %d exceeds maximum %d", len(description), MaxDescriptionLength)
	}
	return nil
}
