package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenloom/screenloom/internal/protocol"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// echoServer upgrades connections, counts them, and pushes every frame on
// frames out to each connected client.
type echoServer struct {
	t        *testing.T
	upgrades atomic.Int32
	received atomic.Int32

	mu    sync.Mutex
	conns []*websocket.Conn
}

func (s *echoServer) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := testUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.upgrades.Add(1)

	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()

	// Drain inbound frames so pings and requests don't stall the peer.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			s.received.Add(1)
		}
	}()
}

func (s *echoServer) push(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(raw))
	}
}

func (s *echoServer) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		conn.Close()
	}
	s.conns = nil
}

func newTestServer(t *testing.T) (*echoServer, string) {
	t.Helper()
	srv := &echoServer{t: t}
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	t.Cleanup(ts.Close)
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestConnectAndBroadcastOrder(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{URL: url}, nil)
	defer m.Close()

	var mu sync.Mutex
	var got []string
	m.Subscribe(func(msg protocol.Message) {
		mu.Lock()
		got = append(got, "first:"+msg.MessageType())
		mu.Unlock()
	})
	m.Subscribe(func(msg protocol.Message) {
		mu.Lock()
		got = append(got, "second:"+msg.MessageType())
		mu.Unlock()
	})

	m.Connect()
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)

	srv.push(`{"type":"system","message":"welcome"}`)
	srv.push(`{"type":"screen_update","screenId":"s1","status":"loading"}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 4
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"first:system", "second:system",
		"first:screen_update", "second:screen_update",
	}, got, "subscribers run in subscription order, messages in delivery order")
}

func TestConnectIdempotent(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{URL: url}, nil)
	defer m.Close()

	for i := 0; i < 5; i++ {
		m.Connect()
	}
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)
	m.Connect()
	m.Connect()

	// Give any stray dials time to land before counting.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), srv.upgrades.Load(), "repeated Connect must not create duplicate sockets")
}

func TestSendWhileDisconnectedIsDropped(t *testing.T) {
	m := New(Config{URL: "ws://localhost:1/nowhere", MaxAttempts: 1}, nil)
	defer m.Close()

	// Never connected: Send must be a silent no-op, not a panic or queue.
	m.Send(protocol.NewGenerateScreens("p", "gpt-5.2", nil))
	assert.Equal(t, StatusDisconnected, m.Status())
}

func TestConcurrentSends(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{URL: url}, nil)
	defer m.Close()

	m.Connect()
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)

	// Many goroutines share one socket; every frame must arrive intact.
	const workers = 8
	const perWorker = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Send(protocol.NewGenerateScreens("p", "gpt-5.2", nil))
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return srv.received.Load() == int32(workers*perWorker)
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusOpen, m.Status())
}

func TestMalformedFrameDoesNotCloseConnection(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{URL: url}, nil)
	defer m.Close()

	var count atomic.Int32
	m.Subscribe(func(protocol.Message) { count.Add(1) })

	m.Connect()
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)

	srv.push(`{not json`)
	srv.push(`{"type":"mystery_update","x":1}`)
	srv.push(`{"type":"error","message":"real"}`)

	require.Eventually(t, func() bool { return count.Load() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusOpen, m.Status())
}

func TestUnsubscribe(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{URL: url}, nil)
	defer m.Close()

	var first, second atomic.Int32
	unsub := m.Subscribe(func(protocol.Message) { first.Add(1) })
	m.Subscribe(func(protocol.Message) { second.Add(1) })

	m.Connect()
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)

	srv.push(`{"type":"system","message":"one"}`)
	require.Eventually(t, func() bool { return second.Load() == 1 },
		time.Second, 5*time.Millisecond)

	unsub()
	srv.push(`{"type":"system","message":"two"}`)
	require.Eventually(t, func() bool { return second.Load() == 2 },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), first.Load(), "unsubscribed handler must not run")
}

func TestReconnectAfterServerClose(t *testing.T) {
	srv, url := newTestServer(t)

	m := New(Config{
		URL:         url,
		BackoffBase: 5 * time.Millisecond,
		BackoffCap:  20 * time.Millisecond,
	}, nil)
	defer m.Close()

	m.Connect()
	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)

	srv.closeAll()
	require.Eventually(t, func() bool { return srv.upgrades.Load() >= 2 },
		2*time.Second, 5*time.Millisecond, "expected automatic reconnect")

	require.Eventually(t, func() bool { return m.Status() == StatusOpen },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, m.Attempts(), "attempt counter resets on successful open")
}

func TestRetryBudgetIsBounded(t *testing.T) {
	m := New(Config{
		URL:         "ws://localhost:1/nowhere",
		BackoffBase: time.Millisecond,
		BackoffCap:  2 * time.Millisecond,
		MaxAttempts: 3,
	}, nil)
	defer m.Close()

	m.Connect()

	require.Eventually(t, func() bool {
		return m.Attempts() == 3 && m.Status() == StatusDisconnected
	}, 2*time.Second, 5*time.Millisecond)

	// Terminal: counter never exceeds the maximum.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, m.Attempts())
	assert.Equal(t, StatusDisconnected, m.Status())
}

func TestBackoffMonotonicUpToCap(t *testing.T) {
	m := New(Config{
		URL:         "ws://unused",
		BackoffBase: time.Second,
		BackoffCap:  10 * time.Second,
	}, nil)

	var prev time.Duration
	for attempt := 1; attempt <= 8; attempt++ {
		delay := m.backoff(attempt)
		assert.GreaterOrEqual(t, delay, prev, "delays must be non-decreasing")
		assert.LessOrEqual(t, delay, 10*time.Second)
		prev = delay
	}
	assert.Equal(t, 2*time.Second, m.backoff(1))
	assert.Equal(t, 10*time.Second, m.backoff(4))
}
