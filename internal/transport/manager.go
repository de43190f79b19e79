package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/screenloom/screenloom/internal/infrastructure/logging"
	"github.com/screenloom/screenloom/internal/protocol"
)

// Status is the connection lifecycle state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusOpen
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Config configures the connection manager. Zero values select defaults.
type Config struct {
	// URL is the backend's WebSocket endpoint.
	URL string
	// BackoffBase is the base reconnect delay. Default 1s.
	BackoffBase time.Duration
	// BackoffCap bounds the reconnect delay. Default 10s.
	BackoffCap time.Duration
	// MaxAttempts bounds automatic reconnects. Once spent, the manager
	// stays disconnected until an explicit Connect. Default 5.
	MaxAttempts int
	// Dialer overrides the default gorilla dialer (tests).
	Dialer *websocket.Dialer
}

func (c *Config) applyDefaults() {
	if c.BackoffBase == 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffCap == 0 {
		c.BackoffCap = 10 * time.Second
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.Dialer == nil {
		c.Dialer = websocket.DefaultDialer
	}
}

// Handler consumes one decoded inbound message.
type Handler func(protocol.Message)

type subscriber struct {
	id int
	fn Handler
}

// Manager is the per-session connection manager. Construct with New; one
// instance exists per session, created at session start and torn down with
// Close.
type Manager struct {
	cfg Config
	log *logging.Logger

	mu         sync.Mutex
	conn       *websocket.Conn
	status     Status
	attempts   int
	closed     bool
	retryTimer *time.Timer

	// writeMu serializes socket writes; gorilla connections allow at most
	// one concurrent writer.
	writeMu sync.Mutex

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

// New creates a manager for the given endpoint. It does not connect.
func New(cfg Config, log *logging.Logger) *Manager {
	cfg.applyDefaults()
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{cfg: cfg, log: log}
}

// Status returns the current connection status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Attempts returns the reconnect attempt counter. It resets to zero on a
// successful open and never exceeds the configured maximum.
func (m *Manager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Connect opens the connection. It is a no-op while already open or
// connecting, so any number of call sites may invoke it without creating
// duplicate sockets. Dialing happens asynchronously.
func (m *Manager) Connect() {
	m.mu.Lock()
	if m.closed || m.status != StatusDisconnected {
		m.mu.Unlock()
		return
	}
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.status = StatusConnecting
	m.mu.Unlock()

	go m.dial()
}

func (m *Manager) dial() {
	conn, resp, err := m.cfg.Dialer.Dial(m.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		m.log.Warn("dial failed", zap.String("url", m.cfg.URL), zap.Error(err))
		m.handleClose()
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	m.conn = conn
	m.status = StatusOpen
	m.attempts = 0
	m.mu.Unlock()

	m.log.Info("connected", zap.String("url", m.cfg.URL))
	go m.readLoop(conn)
}

// readLoop reads until the socket dies. Decoding and broadcast happen
// here, so subscribers observe messages in transport delivery order.
func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.log.Info("connection closed", zap.Error(err))
			m.handleClose()
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// Malformed payloads never close the connection.
			m.log.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		if unknown, ok := msg.(protocol.Unknown); ok {
			m.log.Warn("dropping unrecognized message", zap.String("type", unknown.Type))
			continue
		}

		m.broadcast(msg)
	}
}

func (m *Manager) broadcast(msg protocol.Message) {
	m.subMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(msg)
	}
}

// handleClose tears down the socket and schedules a reconnect while the
// retry budget lasts.
func (m *Manager) handleClose() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.status = StatusDisconnected

	if m.closed {
		return
	}
	if m.attempts >= m.cfg.MaxAttempts {
		// Terminal: the surrounding application must reconnect explicitly.
		m.log.Error("reconnect attempts exhausted",
			zap.Int("attempts", m.attempts))
		return
	}

	m.attempts++
	delay := m.backoff(m.attempts)
	m.log.Info("reconnecting",
		zap.Duration("delay", delay),
		zap.Int("attempt", m.attempts))
	m.retryTimer = time.AfterFunc(delay, m.Connect)
}

// backoff returns the delay before the given attempt: base doubled per
// attempt, never above the cap.
func (m *Manager) backoff(attempt int) time.Duration {
	delay := m.cfg.BackoffBase
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= m.cfg.BackoffCap {
			return m.cfg.BackoffCap
		}
	}
	return delay
}

// Send marshals and writes one message. While the connection is not open
// the message is logged and discarded, never queued.
func (m *Manager) Send(msg protocol.Message) {
	m.mu.Lock()
	conn := m.conn
	open := m.status == StatusOpen
	m.mu.Unlock()

	if !open || conn == nil {
		m.log.Warn("connection not open, message dropped",
			zap.String("type", msg.MessageType()))
		return
	}

	data, err := protocol.Encode(msg)
	if err != nil {
		m.log.Error("encode failed", zap.Error(err))
		return
	}

	m.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	m.writeMu.Unlock()
	if err != nil {
		m.log.Warn("write failed, message dropped", zap.Error(err))
	}
}

// Subscribe registers a handler for inbound messages and returns its
// unsubscribe function. Handlers run in subscription order; unsubscribing
// one never affects the others.
func (m *Manager) Subscribe(fn Handler) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, sub := range m.subs {
			if sub.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Close tears the connection down for good: no further automatic
// reconnects happen after Close.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.status = StatusDisconnected
}
