package notifclient

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/adscreener/adscreener/models"
)

// pushFrame is one inbound WebSocket frame. A frame is either a typed
// control message (routed to a registered handler) or a notification
// payload with optional fields.
type pushFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`

	MongoID   string     `json:"_id"`
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Level     string     `json:"level"`
	DeepLink  string     `json:"deepLink"`
	IsRead    bool       `json:"isRead"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (c *Client) handleMessage(raw []byte) {
	var frame pushFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		// Malformed frames must never crash the client.
		c.logger.Errorf("dropping malformed realtime frame: %v", err)
		return
	}

	c.mu.Lock()
	handler := c.handlers[frame.Type]
	c.mu.Unlock()

	if handler != nil {
		// Consumed entirely by the callback, never enters the list.
		payload := frame.Data
		if payload == nil {
			payload = json.RawMessage(raw)
		}
		handler(payload)
		return
	}

	c.applyNotification(normalize(frame))
}

// normalize turns a pushed frame into a Notification, filling defaults for
// missing fields.
func normalize(frame pushFrame) models.Notification {
	notif := models.Notification{
		ID:       frame.MongoID,
		UserID:   frame.UserID,
		Title:    frame.Title,
		Message:  frame.Message,
		Level:    frame.Level,
		DeepLink: frame.DeepLink,
		Type:     frame.Type,
		IsRead:   frame.IsRead,
	}
	if notif.ID == "" {
		notif.ID = frame.ID
	}
	if notif.Title == "" {
		notif.Title = defaultTitle
	}
	if notif.Message == "" {
		notif.Message = defaultMessage
	}
	if notif.Level == "" {
		notif.Level = models.LevelInfo
	}
	if notif.Type == "" {
		notif.Type = models.TypeRealtimeUpdate
	}
	if frame.CreatedAt != nil {
		notif.CreatedAt = *frame.CreatedAt
	} else {
		notif.CreatedAt = time.Now()
	}
	if notif.ID == "" {
		// Push-only message with no server id yet; give it a stable local
		// identifier so read/clear can target it.
		notif.ClientGeneratedID = uuid.NewString()
	}
	return notif
}

// applyNotification updates an existing entry in place when the server id
// is already present, otherwise prepends and truncates to the cap.
func (c *Client) applyNotification(notif models.Notification) {
	c.mu.Lock()
	if notif.ID != "" {
		for i := range c.notifications {
			if c.notifications[i].ID == notif.ID {
				c.notifications[i] = notif
				snap := c.snapshotLocked()
				c.mu.Unlock()
				c.notifyChange(snap)
				return
			}
		}
	}

	c.notifications = append([]models.Notification{notif}, c.notifications...)
	if len(c.notifications) > maxNotifications {
		c.notifications = c.notifications[:maxNotifications]
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)
}
