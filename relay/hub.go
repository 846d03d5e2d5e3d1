package relay

import (
	"encoding/json"
	"sync"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

// Event names pushed to clients.
const (
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
	EventLocationUpdated    = "location_updated"
	EventStatusUpdated      = "status_updated"
)

// Client-originated event names.
const (
	eventJoinOrderRoom  = "join_order_room"
	eventUpdateLocation = "update_location"
	eventUpdateStatus   = "update_status"
)

// Message is the wire envelope on the websocket channel.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to connected clients. Global events go to everyone and
// clients self-filter; per-order rooms scope the courier-originated pushes.
// Delivery is best-effort with no backlog: no subscribers, no delivery.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
	rooms   map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[uint]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for orderID, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, orderID)
		}
	}
	close(c.send)
}

func (h *Hub) joinRoom(c *Client, orderID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	if h.rooms[orderID] == nil {
		h.rooms[orderID] = make(map[*Client]bool)
	}
	h.rooms[orderID][c] = true
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// RoomSize reports the number of clients subscribed to an order's room.
func (h *Hub) RoomSize(orderID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[orderID])
}

// BroadcastAll sends an event to every connected client.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Errorf("relay: marshal %s event: %v", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.push(payload)
	}
}

// BroadcastRoom sends an event to the clients subscribed to one order.
func (h *Hub) BroadcastRoom(orderID uint, event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Errorf("relay: marshal %s event: %v", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[orderID] {
		c.push(payload)
	}
}

// PublishNewOrder implements lifecycle.Publisher.
func (h *Hub) PublishNewOrder(order models.Order) {
	h.BroadcastAll(EventNewOrder, order)
}

// PublishOrderStatus implements lifecycle.Publisher.
func (h *Hub) PublishOrderStatus(order models.Order) {
	h.BroadcastAll(EventOrderStatusUpdated, order)
}
