package store

import (
	"context"
	"errors"

	"github.com/adscreener/adscreener/models"
)

var ErrNotFound = errors.New("record not found")

// NotificationStore is the persisted collection behind GET/POST/DELETE
// /notifications. The realtime client treats it as the source of truth.
type NotificationStore interface {
	Create(ctx context.Context, notification models.Notification) (models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
}

type AdStore interface {
	Create(ctx context.Context, ad models.Ad) (models.Ad, error)
	GetByID(ctx context.Context, id string) (models.Ad, error)
	ListAll(ctx context.Context) ([]models.Ad, error)
	ListBySubmitter(ctx context.Context, submitterID string) ([]models.Ad, error)
	UpdateReview(ctx context.Context, id, status, note, reviewerID string) (models.Ad, error)
}

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
}
