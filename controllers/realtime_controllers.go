package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adscreener/adscreener/realtime"
	"github.com/adscreener/adscreener/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

// RealtimeHandler -> endpoint WebSocket /ws?userId=...&role=...
// Identitas dari token (middleware) menang atas query param.
func RealtimeHandler(c *gin.Context) {
	userID := c.Query("userId")
	if v, exists := c.Get("user_id"); exists {
		userID = v.(string)
	}
	if userID == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	role := c.Query("role")
	if v, exists := c.Get("role"); exists {
		role = v.(string)
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, userID, role)
	utils.InfoLogger.Printf("Realtime client connected: user=%s role=%s", userID, role)

	// Baca pesan sampai koneksi putus
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
	utils.InfoLogger.Printf("Realtime client disconnected: user=%s", userID)
}
