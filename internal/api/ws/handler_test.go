package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenloom/screenloom/internal/domain/canvas"
	"github.com/screenloom/screenloom/internal/infrastructure/monitoring"
	"github.com/screenloom/screenloom/internal/protocol"
	"github.com/screenloom/screenloom/internal/providers"
)

type failingProvider struct{}

func (failingProvider) GenerateScreen(context.Context, string, string, string) (string, error) {
	return "", errors.New("provider down")
}

func newTestServer(t *testing.T, p providers.Provider) (*httptest.Server, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(p, "", monitoring.NewMetricsOn(nil), nil)
	router.GET("/ws", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.Decode(data)
	require.NoError(t, err)
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg protocol.Message) {
	t.Helper()
	data, err := protocol.Encode(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestWelcomeBanner(t *testing.T) {
	_, conn := newTestServer(t, providers.NewMock())
	msg := readMessage(t, conn)
	sys, ok := msg.(protocol.System)
	require.True(t, ok)
	assert.Contains(t, sys.Message, "Connected")
}

func TestGenerateScreensSequence(t *testing.T) {
	_, conn := newTestServer(t, providers.NewMock())
	readMessage(t, conn) // welcome

	sendMessage(t, conn, protocol.NewGenerateScreens("p", "gpt-5.2", []protocol.ScreenSpec{
		{ID: "s1", Name: "Home", Description: "feed", DeviceType: protocol.DeviceMobile},
		{ID: "s2", Name: "Admin", Description: "table", DeviceType: protocol.DeviceDesktop},
	}))

	// Per screen: loading then ready, in request order.
	expect := []struct {
		id     string
		status canvas.Status
		width  int
	}{
		{"s1", canvas.StatusLoading, 375},
		{"s1", canvas.StatusReady, 375},
		{"s2", canvas.StatusLoading, 1280},
		{"s2", canvas.StatusReady, 1280},
	}
	for _, e := range expect {
		msg := readMessage(t, conn)
		upd, ok := msg.(protocol.ScreenUpdate)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, e.id, upd.ScreenID)
		assert.Equal(t, e.status, upd.Status)
		require.NotNil(t, upd.DesignWidth)
		assert.Equal(t, e.width, *upd.DesignWidth)
		if e.status == canvas.StatusReady {
			require.NotNil(t, upd.HTML)
			assert.NotEmpty(t, *upd.HTML)
		} else {
			assert.Nil(t, upd.HTML)
		}
	}
}

func TestProviderFailureYieldsErrorStatus(t *testing.T) {
	_, conn := newTestServer(t, failingProvider{})
	readMessage(t, conn) // welcome

	sendMessage(t, conn, protocol.NewGenerateScreens("p", "m", []protocol.ScreenSpec{
		{ID: "s1", Name: "Home", Description: "feed", DeviceType: protocol.DeviceMobile},
	}))

	loading := readMessage(t, conn).(protocol.ScreenUpdate)
	assert.Equal(t, canvas.StatusLoading, loading.Status)

	failed := readMessage(t, conn).(protocol.ScreenUpdate)
	assert.Equal(t, "s1", failed.ScreenID)
	assert.Equal(t, canvas.StatusError, failed.Status)
	assert.Nil(t, failed.HTML)
}

func TestUnknownMessageType(t *testing.T) {
	_, conn := newTestServer(t, providers.NewMock())
	readMessage(t, conn) // welcome

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"reticulate"}`)))

	msg := readMessage(t, conn)
	errMsg, ok := msg.(protocol.ErrorMessage)
	require.True(t, ok)
	assert.Contains(t, errMsg.Message, "reticulate")
}

func TestMalformedFrame(t *testing.T) {
	_, conn := newTestServer(t, providers.NewMock())
	readMessage(t, conn) // welcome

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{nope`)))

	msg := readMessage(t, conn)
	errMsg, ok := msg.(protocol.ErrorMessage)
	require.True(t, ok)
	assert.Contains(t, errMsg.Message, "invalid message")
}

func TestTooManyScreensRejected(t *testing.T) {
	_, conn := newTestServer(t, providers.NewMock())
	readMessage(t, conn) // welcome

	specs := make([]protocol.ScreenSpec, 25)
	for i := range specs {
		specs[i] = protocol.ScreenSpec{ID: "s", Name: "n", DeviceType: protocol.DeviceMobile}
	}
	sendMessage(t, conn, protocol.NewGenerateScreens("p", "m", specs))

	msg := readMessage(t, conn)
	_, ok := msg.(protocol.ErrorMessage)
	require.True(t, ok)
}
