package ws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/screenloom/screenloom/internal/domain/canvas"
	"github.com/screenloom/screenloom/internal/infrastructure/logging"
	"github.com/screenloom/screenloom/internal/infrastructure/monitoring"
	"github.com/screenloom/screenloom/internal/protocol"
	"github.com/screenloom/screenloom/internal/providers"
	"github.com/screenloom/screenloom/internal/shared/id"
	"github.com/screenloom/screenloom/internal/shared/utils"
)

// generationTimeout bounds the provider call for one screen.
const generationTimeout = 3 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler manages WebSocket connections.
type Handler struct {
	provider     providers.Provider
	systemPrompt string
	metrics      *monitoring.Metrics
	log          *logging.Logger
}

// NewHandler creates a WebSocket handler backed by the given provider. An
// empty system prompt selects the default.
func NewHandler(provider providers.Provider, systemPrompt string, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	if systemPrompt == "" {
		systemPrompt = providers.DefaultSystemPrompt
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{
		provider:     provider,
		systemPrompt: systemPrompt,
		metrics:      metrics,
		log:          log,
	}
}

// HandleConnection handles WebSocket upgrade and messages.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.ConnectionOpened()
		defer h.metrics.ConnectionClosed()
	}

	reqCtx := c.Request.Context()
	h.send(conn, protocol.System{
		Type:    protocol.TypeSystem,
		Message: "Connected to Screenloom generation service",
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			h.sendError(conn, fmt.Sprintf("invalid message: %v", err))
			continue
		}
		if h.metrics != nil {
			h.metrics.MessageReceived(msg.MessageType())
		}

		switch m := msg.(type) {
		case protocol.GenerateScreens:
			h.handleGenerate(reqCtx, conn, m)
		default:
			h.sendError(conn, fmt.Sprintf("unknown message type %q", msg.MessageType()))
		}
	}
}

// handleGenerate validates the request and streams per-screen updates back
// over the connection.
func (h *Handler) handleGenerate(reqCtx context.Context, conn *websocket.Conn, msg protocol.GenerateScreens) {
	if err := utils.ValidatePrompt(msg.Prompt); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	if err := utils.ValidateScreenCount(len(msg.Screens)); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	for _, screen := range msg.Screens {
		if err := utils.ValidateScreenFields(screen.Name, screen.Description); err != nil {
			h.sendError(conn, err.Error())
			return
		}
	}

	reqID := id.NewRequestID()
	h.log.Info("generation request",
		zap.String("request_id", reqID.String()),
		zap.Int("screens", len(msg.Screens)),
		zap.String("model", msg.Model))

	for _, screen := range msg.Screens {
		h.generateOne(reqCtx, conn, screen)
	}
}

func (h *Handler) generateOne(reqCtx context.Context, conn *websocket.Conn, screen protocol.ScreenSpec) {
	designWidth := screen.Class().DesignWidth()
	h.send(conn, protocol.ScreenUpdate{
		Type:        protocol.TypeScreenUpdate,
		ScreenID:    screen.ID,
		Status:      canvas.StatusLoading,
		DesignWidth: &designWidth,
	})

	ctx, cancel := context.WithTimeout(reqCtx, generationTimeout)
	defer cancel()

	started := time.Now()
	html, err := h.provider.GenerateScreen(ctx, screen.Name, screen.Description, h.systemPrompt)
	if err != nil {
		h.log.Warn("screen generation failed",
			zap.String("screen_id", screen.ID),
			zap.String("name", screen.Name),
			zap.Error(err))
		if h.metrics != nil {
			h.metrics.ScreenGenerated("error", time.Since(started))
		}
		h.send(conn, protocol.ScreenUpdate{
			Type:        protocol.TypeScreenUpdate,
			ScreenID:    screen.ID,
			Status:      canvas.StatusError,
			DesignWidth: &designWidth,
		})
		return
	}

	if len(html) > utils.MaxFrameSize {
		h.log.Warn("generated screen too large",
			zap.String("screen_id", screen.ID),
			zap.Int("bytes", len(html)))
		if h.metrics != nil {
			h.metrics.ScreenGenerated("error", time.Since(started))
		}
		h.send(conn, protocol.ScreenUpdate{
			Type:        protocol.TypeScreenUpdate,
			ScreenID:    screen.ID,
			Status:      canvas.StatusError,
			DesignWidth: &designWidth,
		})
		return
	}

	if h.metrics != nil {
		h.metrics.ScreenGenerated("ready", time.Since(started))
	}
	h.send(conn, protocol.ScreenUpdate{
		Type:        protocol.TypeScreenUpdate,
		ScreenID:    screen.ID,
		Status:      canvas.StatusReady,
		HTML:        &html,
		DesignWidth: &designWidth,
	})
}

func (h *Handler) send(conn *websocket.Conn, msg protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		h.log.Error("encode outbound message", zap.Error(err))
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.log.Warn("websocket write failed", zap.Error(err))
		return
	}
	if h.metrics != nil {
		h.metrics.MessageSent(msg.MessageType())
	}
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) {
	h.send(conn, protocol.ErrorMessage{Type: protocol.TypeError, Message: msg})
}
