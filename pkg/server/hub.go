package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/scene/sink"
)

// writeTimeout bounds a single websocket write.
const writeTimeout = 3 * time.Second

// Hub fans layout frames out to websocket clients. A client that connects
// receives the most recent frame immediately.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    []byte
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Add registers conn and sends it the latest frame, if any.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
	if h.last != nil {
		h.write(conn, h.last)
	}
}

// Remove unregisters conn.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Last returns the most recently broadcast frame.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Broadcast sends message to every client. Clients that fail to receive it
// are closed and dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = message
	for conn := range h.clients {
		h.write(conn, message)
	}
}

// write must be called with mu held.
func (h *Hub) write(conn *websocket.Conn, message []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	err := conn.Write(ctx, websocket.MessageText, message)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		delete(h.clients, conn)
	}
}

// Publish broadcasts the box tree and issues of a pipeline result.
func (h *Hub) Publish(source string, res *pipeline.Result) error {
	frame, err := sink.RenderJSON(res.Box, sink.WithJSONSource(source), sink.WithJSONIssues(res.Issues))
	if err != nil {
		return err
	}
	h.Broadcast(frame)
	return nil
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Debug("websocket accept failed", "error", err)
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)

	// Clients only listen; CloseRead handles control frames and ends the
	// context when the peer goes away.
	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()
	_ = conn.Close(websocket.StatusNormalClosure, "")
}
