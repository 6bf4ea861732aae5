package broadcastsvc

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
)

const sendBufSize = 8

type attendanceUpdate struct {
	Type    string        `json:"type"`
	Payload updatePayload `json:"payload"`
}

type updatePayload struct {
	SectionID int `json:"sectionId"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans attendance update notifications out to all connected
// websocket clients. Slow clients are disconnected rather than
// allowed to block a broadcast.
type Hub struct {
	logger core.Logger

	mutex   sync.RWMutex
	clients map[string]*client
}

var _ attendance.Broadcaster = (*Hub)(nil)

func NewHub(logger core.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// HandleConn registers conn and blocks until the peer disconnects.
// It owns the connection; the caller must not use it afterwards.
func (h *Hub) HandleConn(conn *websocket.Conn) {
	cl := &client{conn: conn, send: make(chan []byte, sendBufSize)}
	key := uuid.New().String()

	h.mutex.Lock()
	h.clients[key] = cl
	h.mutex.Unlock()

	go cl.writeLoop()

	// inbound frames are ignored; the read loop only detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(key)
}

// AttendanceUpdated notifies all clients that attendance changed for a section.
func (h *Hub) AttendanceUpdated(sectionID int) {
	msg := attendanceUpdate{
		Type:    "attendance_update",
		Payload: updatePayload{SectionID: sectionID},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshaling attendance update", err)
		return
	}

	h.mutex.RLock()
	stale := make([]string, 0)
	for key, cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			stale = append(stale, key)
		}
	}
	h.mutex.RUnlock()

	for _, key := range stale {
		h.drop(key)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mutex.Lock()
	keys := make([]string, 0, len(h.clients))
	for key := range h.clients {
		keys = append(keys, key)
	}
	h.mutex.Unlock()

	for _, key := range keys {
		h.drop(key)
	}
}

func (h *Hub) drop(key string) {
	h.mutex.Lock()
	cl, ok := h.clients[key]
	if ok {
		delete(h.clients, key)
	}
	h.mutex.Unlock()

	if ok {
		close(cl.send)
	}
}

func (cl *client) writeLoop() {
	defer cl.conn.Close()
	for data := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
