package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/relay"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades authenticated connections onto the notification relay.
type WSHandler struct {
	Hub *relay.Hub
}

func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.Hub.Serve(conn, middleware.GetUserID(c), middleware.GetRole(c))
}
