package memory

import (
	"context"
	"errors"
	"time"

	"github.com/adscreener/adscreener/models"
)

var errWriteFailed = errors.New("simulated write failure")

func (r *NotificationRepository) Create(_ context.Context, notification models.Notification) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return models.Notification{}, errWriteFailed
	}
	if notification.ID == "" {
		notification.ID = nextIDString("n", &r.nextID)
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	if notification.Level == "" {
		notification.Level = models.LevelInfo
	}
	r.records = append(r.records, notification)
	return notification, nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Notification{}
	for i := len(r.records) - 1; i >= 0; i-- {
		record := r.records[i]
		if record.UserID != userID {
			continue
		}
		result = append(result, record)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return errWriteFailed
	}
	idSet := toSet(ids)
	for i := range r.records {
		if r.records[i].UserID == userID && idSet[r.records[i].ID] {
			r.records[i].IsRead = true
		}
	}
	return nil
}

func (r *NotificationRepository) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return errWriteFailed
	}
	kept := r.records[:0]
	for _, record := range r.records {
		if record.UserID != userID {
			kept = append(kept, record)
		}
	}
	r.records = kept
	return nil
}

func (r *NotificationRepository) DeleteByIDs(_ context.Context, userID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return errWriteFailed
	}
	idSet := toSet(ids)
	kept := r.records[:0]
	for _, record := range r.records {
		if record.UserID == userID && idSet[record.ID] {
			continue
		}
		kept = append(kept, record)
	}
	r.records = kept
	return nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
