package protocol

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/screenloom/screenloom/internal/domain/canvas"
	"github.com/screenloom/screenloom/internal/domain/layout"
)

// Type tags carried in the "type" field of every frame.
const (
	TypeGenerateScreens = "generate_screens"
	TypeScreenUpdate    = "screen_update"
	TypeError           = "error"
	TypeSystem          = "system"
)

// Device types accepted on screen specs.
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

// Message is the decoded form of one wire frame. Exactly one of the known
// variants implements it.
type Message interface {
	MessageType() string
}

// ScreenSpec describes one screen the user asked for.
type ScreenSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DeviceType  string `json:"deviceType"`
}

// Class maps the spec's device type onto a frame class. Unknown device
// types fall back to the compact (mobile) class.
func (s ScreenSpec) Class() layout.Class {
	if s.DeviceType == DeviceDesktop {
		return layout.ClassWide
	}
	return layout.ClassCompact
}

// GenerateScreens asks the backend to generate a batch of screens. The
// model id is passed through opaquely.
type GenerateScreens struct {
	Type    string       `json:"type"`
	Prompt  string       `json:"prompt"`
	Model   string       `json:"model"`
	Screens []ScreenSpec `json:"screens"`
}

func (GenerateScreens) MessageType() string { return TypeGenerateScreens }

// NewGenerateScreens builds a request envelope with the tag set.
func NewGenerateScreens(prompt, model string, screens []ScreenSpec) GenerateScreens {
	return GenerateScreens{
		Type:    TypeGenerateScreens,
		Prompt:  prompt,
		Model:   model,
		Screens: screens,
	}
}

// ScreenUpdate is one per-screen lifecycle event. HTML and DesignWidth are
// only present on some events; absent fields must not clobber local state.
type ScreenUpdate struct {
	Type        string        `json:"type"`
	ScreenID    string        `json:"screenId"`
	Status      canvas.Status `json:"status"`
	HTML        *string       `json:"html,omitempty"`
	DesignWidth *int          `json:"designWidth,omitempty"`
}

func (ScreenUpdate) MessageType() string { return TypeScreenUpdate }

// ClassHint returns the frame class implied by the update's design width,
// if it carries one.
func (u ScreenUpdate) ClassHint() (layout.Class, bool) {
	if u.DesignWidth == nil {
		return "", false
	}
	return layout.ClassForDesignWidth(*u.DesignWidth), true
}

// ErrorMessage reports a failure unrelated to any specific screen.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (ErrorMessage) MessageType() string { return TypeError }

// System carries connection housekeeping such as the welcome banner.
type System struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (System) MessageType() string { return TypeSystem }

// Unknown is the unrecognized-variant arm: the tag and raw payload of a
// frame no variant matched. Callers log it and move on.
type Unknown struct {
	Type string
	Raw  []byte
}

func (u Unknown) MessageType() string { return u.Type }

// envelope peeks at the tag before full decoding.
type envelope struct {
	Type string `json:"type"`
}

// Decode parses one frame into its tagged variant. Malformed JSON and
// frames without a type tag return an error; recognized tags with invalid
// bodies do too. An unrecognized tag is not an error.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("frame has no type tag")
	}

	switch env.Type {
	case TypeGenerateScreens:
		var msg GenerateScreens
		if err := sonic.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	case TypeScreenUpdate:
		var msg ScreenUpdate
		if err := sonic.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	case TypeError:
		var msg ErrorMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	case TypeSystem:
		var msg System
		if err := sonic.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	default:
		return Unknown{Type: env.Type, Raw: data}, nil
	}
}

// Encode marshals an outbound message.
func Encode(msg Message) ([]byte, error) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.MessageType(), err)
	}
	return data, nil
}
