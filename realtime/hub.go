package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/utils"
)

// Control message types pushed alongside display notifications
const (
	TypeDashboardUpdate = "dashboard_update"
	TypeAdUpdate        = "ad_update"
	TypeProfileUpdate   = "profile_update"
)

// ControlMessage adalah frame bertipe yang dikonsumsi callback di client,
// bukan ditampilkan sebagai notifikasi.
type ControlMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type clientInfo struct {
	userID string
	role   string
}

// Hub menampung semua koneksi WebSocket aktif per user
type Hub struct {
	clients map[*websocket.Conn]clientInfo
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]clientInfo),
}

// RegisterClient -> menambahkan connection ke set dengan user dan role
func RegisterClient(conn *websocket.Conn, userID, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = clientInfo{userID: userID, role: role}
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// PushNotification sends a display notification to every connection of one user.
func PushNotification(userID string, notif models.Notification) {
	push(userID, "", notif)
}

// PushControl sends a typed control message to every connection of one user.
// Role may be empty to target all of the user's connections.
func PushControl(userID, role, msgType string, data interface{}) {
	push(userID, role, ControlMessage{Type: msgType, Data: data})
}

// BroadcastControl sends a typed control message to every connected client
// with the given role (all clients when role is empty).
func BroadcastControl(role, msgType string, data interface{}) {
	payload, err := json.Marshal(ControlMessage{Type: msgType, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling control message: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn, info := range hub.clients {
		if role != "" && info.role != role {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending control message to %s: %v", info.userID, err)
		}
	}
}

func push(userID, role string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling realtime payload: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn, info := range hub.clients {
		if info.userID != userID {
			continue
		}
		if role != "" && info.role != role {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending realtime payload to %s: %v", info.userID, err)
		}
	}
}

// ConnectedCount reports how many connections are currently registered.
func ConnectedCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}
