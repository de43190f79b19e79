package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenloom/screenloom/internal/domain/canvas"
	"github.com/screenloom/screenloom/internal/domain/layout"
)

func TestDecodeScreenUpdate(t *testing.T) {
	data := []byte(`{"type":"screen_update","screenId":"s1","status":"ready","html":"<p>ok</p>","designWidth":1280}`)

	msg, err := Decode(data)
	require.NoError(t, err)

	update, ok := msg.(ScreenUpdate)
	require.True(t, ok, "expected ScreenUpdate, got %T", msg)
	assert.Equal(t, "s1", update.ScreenID)
	assert.Equal(t, canvas.StatusReady, update.Status)
	require.NotNil(t, update.HTML)
	assert.Equal(t, "<p>ok</p>", *update.HTML)

	class, ok := update.ClassHint()
	require.True(t, ok)
	assert.Equal(t, layout.ClassWide, class)
}

func TestDecodeScreenUpdateOmittedFields(t *testing.T) {
	data := []byte(`{"type":"screen_update","screenId":"s1","status":"loading"}`)

	msg, err := Decode(data)
	require.NoError(t, err)

	update := msg.(ScreenUpdate)
	assert.Nil(t, update.HTML, "absent html must stay nil so it cannot clobber state")
	_, ok := update.ClassHint()
	assert.False(t, ok)
}

func TestDecodeGenerateScreens(t *testing.T) {
	data := []byte(`{"type":"generate_screens","prompt":"login, dashboard","model":"gpt-5.2",` +
		`"screens":[{"id":"a","name":"Login","description":"email form","deviceType":"desktop"}]}`)

	msg, err := Decode(data)
	require.NoError(t, err)

	req, ok := msg.(GenerateScreens)
	require.True(t, ok)
	assert.Equal(t, "gpt-5.2", req.Model)
	require.Len(t, req.Screens, 1)
	assert.Equal(t, layout.ClassWide, req.Screens[0].Class())
}

func TestScreenSpecClassDefaultsToCompact(t *testing.T) {
	assert.Equal(t, layout.ClassCompact, ScreenSpec{DeviceType: "mobile"}.Class())
	assert.Equal(t, layout.ClassCompact, ScreenSpec{DeviceType: "toaster"}.Class())
}

func TestDecodeError(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"error","message":"boom"}`))
	require.NoError(t, err)

	errMsg, ok := msg.(ErrorMessage)
	require.True(t, ok)
	assert.Equal(t, "boom", errMsg.Message)
}

func TestDecodeUnknownType(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"telemetry","payload":42}`))
	require.NoError(t, err, "unknown tags are dropped by callers, not errors")

	unknown, ok := msg.(Unknown)
	require.True(t, ok)
	assert.Equal(t, "telemetry", unknown.Type)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"message":"no tag"}`))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	req := NewGenerateScreens("two screens", "gemini-3-pro", []ScreenSpec{
		{ID: "a", Name: "Login", Description: "", DeviceType: "mobile"},
	})

	data, err := Encode(req)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}
