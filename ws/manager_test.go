package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSubscriber spins a loopback websocket server that registers every
// accepted connection with the manager, and returns the client side.
func newSubscriber(t *testing.T, m *Manager) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		m.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.Eventually(t, func() bool { return m.Count() > 0 }, time.Second, 10*time.Millisecond)
	return client
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	m := NewManager()
	client := newSubscriber(t, m)

	m.Broadcast([]byte(`{"type":"sensor_reading"}`))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), "sensor_reading")
}

func TestBroadcastDropsGoneSubscribers(t *testing.T) {
	m := NewManager()
	client := newSubscriber(t, m)
	require.NoError(t, client.Close())

	// The write to the closed peer may not fail on the first attempt;
	// keep broadcasting until the manager notices and drops it.
	require.Eventually(t, func() bool {
		m.Broadcast([]byte("ping"))
		return m.Count() == 0
	}, time.Second, 20*time.Millisecond)
}

func TestUnregisterRemovesSubscriber(t *testing.T) {
	m := NewManager()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		if conn, err := upgrader.Upgrade(w, r, nil); err == nil {
			id := m.Register(conn)
			m.Unregister(id)
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 10*time.Millisecond)
}
