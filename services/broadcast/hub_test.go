package broadcastsvc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func newTestServer(hub *Hub) *httptest.Server {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.HandleConn(conn)
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func Test_Hub_AttendanceUpdated(t *testing.T) {
	hub := NewHub(nopLogger{})
	srv := newTestServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn1 := dial(t, srv)
	defer conn1.Close()
	conn2 := dial(t, srv)
	defer conn2.Close()
	waitForClients(t, hub, 2)

	hub.AttendanceUpdated(42)

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Type    string `json:"type"`
			Payload struct {
				SectionID int `json:"sectionId"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "attendance_update", msg.Type)
		assert.Equal(t, 42, msg.Payload.SectionID)
	}
}

func Test_Hub_dropsDisconnectedClient(t *testing.T) {
	hub := NewHub(nopLogger{})
	srv := newTestServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// broadcasting with no clients is a no-op
	hub.AttendanceUpdated(1)
}
