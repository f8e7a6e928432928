package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for dev simplicity
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ApprovalEvent is pushed to connected clients whenever a submission is
// created or decided, so reviewer dashboards refresh without polling.
// EnterpriseID scopes delivery and is not part of the wire payload.
type ApprovalEvent struct {
	Event        string `json:"event"` // submission.created, submission.approved, submission.rejected
	RequestID    string `json:"request_id"`
	DataType     string `json:"data_type"`
	Status       string `json:"status"`
	EnterpriseID string `json:"-"`
}

// Client represents a single connected WebSocket client
type Client struct {
	Hub          *Hub
	Conn         *websocket.Conn
	Send         chan []byte
	EnterpriseID string
	Role         string
}

type envelope struct {
	enterpriseID string
	payload      []byte
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

// NewHub initializes a new WS Hub instance
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// BroadcastApprovalEvent serializes and queues an approval event for the
// event's enterprise. Never blocks the caller.
func (h *Hub) BroadcastApprovalEvent(event ApprovalEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- envelope{enterpriseID: event.EnterpriseID, payload: payload}:
	default:
	}
}

// wants reports whether the client may receive events for the given
// enterprise. Platform admins see everything; unscoped events go to all.
func (c *Client) wants(enterpriseID string) bool {
	if enterpriseID == "" || c.Role == model.RoleFandoroAdmin {
		return true
	}
	return c.EnterpriseID == enterpriseID
}

func (h *Hub) deliver(env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if !client.wants(env.enterpriseID) {
			continue
		}
		select {
		case client.Send <- env.payload:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// Run starts the core dispatch loop for WebSocket events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Log.Info("WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				logger.Log.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		// Fast track writing queued messages
		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		// Just reading to keep connection alive
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

// ServeWs authenticates the peer via its token query param and upgrades
// the connection.
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		logger.Log.Warn("WebSocket connection rejected: invalid token", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	role, _ := claims["role"].(string)
	if !model.ValidRole(role) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	enterpriseID, _ := claims["enterprise_id"].(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		Hub:          hub,
		Conn:         conn,
		Send:         make(chan []byte, 256),
		EnterpriseID: enterpriseID,
		Role:         role,
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
