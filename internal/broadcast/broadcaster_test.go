package broadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jholtmann/todocast/internal/domain"
)

// testBroadcaster sets up a Broadcaster behind a test HTTP server.
func testBroadcaster(t *testing.T, maxClients int) (*Broadcaster, func() *ws.Conn) {
	t.Helper()

	broadcaster := NewBroadcaster(clockwork.NewRealClock(), maxClients)
	t.Cleanup(func() { broadcaster.Stop() })

	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		if err := broadcaster.Register(conn); err != nil {
			return
		}

		go func() {
			defer broadcaster.Unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}))
	t.Cleanup(func() { server.Close() })

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return broadcaster, dial
}

func waitForClientCount(b *Broadcaster, expected int) bool {
	for i := 0; i < 100; i++ {
		if b.ClientCount() == expected {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func readEvent(t *testing.T, conn *ws.Conn) domain.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event domain.Event
	require.NoError(t, json.Unmarshal(msg, &event))
	return event
}

func TestBroadcaster_NotifyAdded(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	todo := domain.Todo{ID: 4, Title: "Buy milk", CreatedAt: created}
	broadcaster.NotifyAdded(todo, `<div id="todo-4">Buy milk</div>`, "req-abc")

	event := readEvent(t, conn)
	assert.Equal(t, domain.EventTodoAdded, event.Name)
	assert.Equal(t, "req-abc", event.Origin)
	assert.Equal(t, int64(4), event.Data.ID)
	assert.Equal(t, "Buy milk", event.Data.Title)
	assert.False(t, event.Data.Completed)
	require.NotNil(t, event.Data.CreatedAt)
	assert.True(t, created.Equal(*event.Data.CreatedAt))
	assert.Contains(t, event.Data.HTML, "todo-4")
}

func TestBroadcaster_NotifyToggled(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	todo := domain.Todo{ID: 2, Title: "X", Completed: true}
	broadcaster.NotifyToggled(todo, `<div id="todo-2">X</div>`, "req-1")

	event := readEvent(t, conn)
	assert.Equal(t, domain.EventTodoToggled, event.Name)
	assert.True(t, event.Data.Completed)
	assert.Nil(t, event.Data.CreatedAt)
	assert.NotEmpty(t, event.Data.HTML)
}

func TestBroadcaster_NotifyDeleted(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	broadcaster.NotifyDeleted(9, "old todo", "req-2")

	event := readEvent(t, conn)
	assert.Equal(t, domain.EventTodoDeleted, event.Name)
	assert.Equal(t, int64(9), event.Data.ID)
	assert.Equal(t, "old todo", event.Data.Title)
	assert.Empty(t, event.Data.HTML)
}

func TestBroadcaster_FanOutToAllClients(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn1 := dial()
	conn2 := dial()
	require.True(t, waitForClientCount(broadcaster, 2))

	broadcaster.NotifyAdded(domain.Todo{ID: 1, Title: "shared"}, "<div></div>", "")

	for _, conn := range []*ws.Conn{conn1, conn2} {
		event := readEvent(t, conn)
		assert.Equal(t, "shared", event.Data.Title)
	}
}

func TestBroadcaster_UnregisterOnDisconnect(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	conn.Close()
	require.True(t, waitForClientCount(broadcaster, 0))
}

func TestBroadcaster_MaxClients(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 1)

	dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	// Second dial succeeds at the HTTP level but registration is refused
	// and the connection closed by the server.
	conn2 := dial()
	conn2.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn2.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 1, broadcaster.ClientCount())
}

func TestBroadcaster_PublishWithoutClients(t *testing.T) {
	broadcaster := NewBroadcaster(clockwork.NewRealClock(), 10)
	t.Cleanup(func() { broadcaster.Stop() })

	// Must not block or panic.
	broadcaster.NotifyDeleted(1, "nobody listening", "")
	assert.Equal(t, 0, broadcaster.ClientCount())
}

func TestBroadcaster_StopClosesClients(t *testing.T) {
	broadcaster, dial := testBroadcaster(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(broadcaster, 1))

	broadcaster.Stop()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
