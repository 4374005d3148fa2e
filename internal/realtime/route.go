package realtime

import (
	"net/http"

	"rescue-service/internal/middleware"
	"rescue-service/pkg/constants"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the connection and subscribes it to lifecycle
// broadcasts.
func ServeWS(hub *Hub, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.logger.Warnf("Websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: c.GetString(constants.UserID),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func RegisterRoutes(r *gin.Engine, hub *Hub, jwtSecret string) {
	r.GET("api/v1/ws", middleware.Secured(jwtSecret), func(c *gin.Context) {
		ServeWS(hub, c)
	})
}
