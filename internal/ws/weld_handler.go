package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The registry API is unauthenticated and CORS-open; the feed follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WeldStreamHandler upgrades to a websocket subscribed to weld changes.
// ?objectName= limits the feed to one construction object.
func WeldStreamHandler(hub *WeldHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newWeldClient(hub, conn, strings.TrimSpace(c.Query("objectName")))
		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		}

		go client.writePump()
		client.readPump()
	}
}
