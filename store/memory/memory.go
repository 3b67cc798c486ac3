// Package memory provides in-memory store implementations used by tests
// and local development without a running MongoDB.
package memory

import (
	"fmt"
	"sync"

	"github.com/adscreener/adscreener/models"
)

type NotificationRepository struct {
	mu      sync.Mutex
	nextID  int
	records []models.Notification
	// FailWrites simulates persistence failures for rollback testing.
	FailWrites bool
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{nextID: 1}
}

type AdRepository struct {
	mu      sync.Mutex
	nextID  int
	records []models.Ad
}

func NewAdRepository() *AdRepository {
	return &AdRepository{nextID: 1}
}

type UserRepository struct {
	mu      sync.Mutex
	nextID  int
	records []models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1}
}

func nextIDString(prefix string, n *int) string {
	id := fmt.Sprintf("%s%d", prefix, *n)
	*n++
	return id
}
