package relay

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

// sendBuffer bounds the per-client outbound queue. A slow reader overflows
// the buffer and loses frames instead of blocking publishers.
const sendBuffer = 32

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	UserID uint
	Role   models.UserRole
}

// push queues a frame without blocking. Caller holds the hub lock.
func (c *Client) push(payload []byte) {
	select {
	case c.send <- payload:
	default:
		utils.ErrorLogger.Warnf("relay: dropping frame for slow client (user %d)", c.UserID)
	}
}

// Serve registers the connection and pumps messages until it closes.
func (h *Hub) Serve(conn *websocket.Conn, userID uint, role models.UserRole) {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		UserID: userID,
		Role:   role,
	}
	h.register(client)
	go client.writePump()
	client.readPump()
}

func (c *Client) writePump() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	c.conn.Close()
}

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type locationPush struct {
	OrderID  uint `json:"orderId"`
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type statusPush struct {
	OrderID uint   `json:"orderId"`
	Status  string `json:"status"`
}

func (c *Client) readPump() {
	defer c.hub.unregister(c)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Event {
		case eventJoinOrderRoom:
			var orderID uint
			if err := json.Unmarshal(msg.Data, &orderID); err != nil {
				continue
			}
			c.hub.joinRoom(c, orderID)
		case eventUpdateLocation:
			var push locationPush
			if err := json.Unmarshal(msg.Data, &push); err != nil {
				continue
			}
			// Ephemeral: relayed to the room, never persisted.
			c.hub.BroadcastRoom(push.OrderID, EventLocationUpdated, push.Location)
		case eventUpdateStatus:
			var push statusPush
			if err := json.Unmarshal(msg.Data, &push); err != nil {
				continue
			}
			c.hub.BroadcastRoom(push.OrderID, EventStatusUpdated, push.Status)
		}
	}
}
