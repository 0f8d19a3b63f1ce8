package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/auth"
	"github.com/retail-admin/backoffice/internal/events"
	"go.uber.org/zap"
)

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub pushes toasts to the sockets of the admin they belong to and
// announces role changes to everyone connected.
type WSHub struct {
	jwtSecret   string
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[uuid.UUID][]*wsClient
}

func NewWSHub(jwtSecret string, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		jwtSecret:   jwtSecret,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[uuid.UUID][]*wsClient),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	if err := h.subscriber.Subscribe(ctx, events.StreamToasts, h.routeToast); err != nil {
		return err
	}
	return h.subscriber.Subscribe(ctx, events.StreamRoles, h.broadcast)
}

func (h *WSHub) routeToast(event events.Event) {
	raw, _ := event.Payload["admin_id"].(string)
	adminID, err := uuid.Parse(raw)
	if err != nil {
		h.log.Warn("toast event without admin", zap.String("admin_id", raw))
		return
	}
	h.SendToUser(adminID, event)
}

func (h *WSHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.connections {
		for _, cl := range clients {
			_ = cl.write(data)
		}
	}
}

func (h *WSHub) SendToUser(adminID uuid.UUID, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, cl := range h.connections[adminID] {
		if err := cl.write(data); err != nil {
			h.log.Debug("ws write failed", zap.String("admin_id", adminID.String()), zap.Error(err))
		}
	}
}

// Connections counts open sockets of one admin.
func (h *WSHub) Connections(adminID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[adminID])
}

func (h *WSHub) register(adminID uuid.UUID, cl *wsClient) {
	h.mu.Lock()
	h.connections[adminID] = append(h.connections[adminID], cl)
	h.mu.Unlock()
}

func (h *WSHub) unregister(adminID uuid.UUID, cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.connections[adminID]
	for i, c := range clients {
		if c == cl {
			h.connections[adminID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.connections[adminID]) == 0 {
		delete(h.connections, adminID)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.jwtSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	cl := &wsClient{conn: conn}
	h.register(claims.AdminID, cl)
	defer func() {
		h.unregister(claims.AdminID, cl)
		conn.Close()
	}()

	// Read loop keeps the connection alive until the client leaves.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
