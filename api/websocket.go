package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/logging"
)

const (
	messageAgentChat     = "agent_chat"
	messageAgentResponse = "agent_response"
	messageError         = "error"

	eventAgentCreated  = "agent_created"
	eventAgentDeleted  = "agent_deleted"
	eventTaskCompleted = "task_completed"

	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// inbound is a client frame on /ws.
type inbound struct {
	Type    string `json:"type"`
	AgentID string `json:"agentId"`
	Message string `json:"message"`
}

// outbound is a reply to an inbound frame.
type outbound struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// event is pushed to every connected client.
type event struct {
	Type    string          `json:"type"`
	AgentID string          `json:"agentId"`
	Agent   *core.AgentInfo `json:"agent,omitempty"`
	Task    *core.Task      `json:"task,omitempty"`
}

// client serialises writes on one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type hub struct {
	logger  logging.Logger
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func newHub(logger logging.Logger) *hub {
	return &hub{logger: logger, clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *hub) broadcast(ev event) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		if err := c.write(ev); err != nil {
			h.logger.Debug("WebSocket broadcast failed", "event", ev.Type, "error", err)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
	h.clients = make(map[*client]struct{})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	c := &client{conn: conn}
	s.hub.add(c)
	s.logger.Info("WebSocket client connected", "remote", r.RemoteAddr)

	defer func() {
		s.hub.remove(c)
		_ = conn.Close()
		s.logger.Info("WebSocket client disconnected", "remote", r.RemoteAddr)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read failed", "error", err)
			}
			return
		}
		reply, ok := s.handleFrame(r.Context(), data)
		if !ok {
			continue
		}
		if err := c.write(reply); err != nil {
			s.logger.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}

// handleFrame answers one inbound frame. Unknown frame types are ignored.
func (s *Server) handleFrame(ctx context.Context, data []byte) (outbound, bool) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Warn("WebSocket frame is not JSON", "error", err)
		return outbound{Type: messageError, Content: "invalid message"}, true
	}
	switch msg.Type {
	case messageAgentChat:
		reply, err := s.core.ChatWithAgent(ctx, msg.AgentID, msg.Message)
		if err != nil {
			if errors.Is(err, core.ErrAgentNotFound) {
				return outbound{Type: messageError, Content: "Agent not found"}, true
			}
			s.logger.Error("WebSocket chat failed", "agent_id", msg.AgentID, "error", err)
			return outbound{Type: messageError, Content: "Failed to chat with agent"}, true
		}
		return outbound{Type: messageAgentResponse, Content: reply.Response}, true
	default:
		s.logger.Debug("Ignoring WebSocket frame", "type", msg.Type)
		return outbound{}, false
	}
}
