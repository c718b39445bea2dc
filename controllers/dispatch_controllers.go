package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pedidopronto/delivery-app/dispatch"
	"github.com/pedidopronto/delivery-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DispatchSocketHandler upgrades a dashboard client to a websocket and
// keeps it registered until disconnect.
func DispatchSocketHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, ErrNoPermission)
		c.Abort()
		return
	}
	role := roleInterface.(string)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	dispatch.RegisterClient(ws, role)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	dispatch.UnregisterClient(ws)
}
