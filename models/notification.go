package models

import (
	"time"
)

// Severity levels (display only, no behavioral effect)
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Default type for realtime messages that carry no category
const TypeRealtimeUpdate = "realtime_update"

type Notification struct {
	ID string `json:"id" bson:"_id,omitempty"`
	// ClientGeneratedID is assigned client-side to a pushed message that has
	// no server id yet. Never persisted.
	ClientGeneratedID string    `json:"clientGeneratedId,omitempty" bson:"-"`
	UserID            string    `json:"userId" bson:"user_id"`
	Title             string    `json:"title" bson:"title"`
	Message           string    `json:"message" bson:"message"`
	Level             string    `json:"level" bson:"level"`
	DeepLink          string    `json:"deepLink,omitempty" bson:"deep_link,omitempty"`
	Type              string    `json:"type" bson:"type"`
	IsRead            bool      `json:"isRead" bson:"is_read"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
}

// Key returns the stable identifier usable for local lookups:
// the server id when present, otherwise the client-generated one.
func (n Notification) Key() string {
	if n.ID != "" {
		return n.ID
	}
	return n.ClientGeneratedID
}

func IsValidLevel(value string) bool {
	switch value {
	case LevelInfo, LevelSuccess, LevelWarning, LevelError:
		return true
	default:
		return false
	}
}
