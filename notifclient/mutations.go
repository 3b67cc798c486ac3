package notifclient

import (
	"context"
	"net/http"

	"github.com/adscreener/adscreener/models"
)

// markReadRequest is the body of POST /notifications.
type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

// clearRequest is the body of DELETE /notifications.
type clearRequest struct {
	NotificationIDs []string `json:"notificationIds,omitempty"`
	Action          string   `json:"action,omitempty"`
	UserID          string   `json:"userId,omitempty"`
}

// MarkAsRead flips the matching record to read immediately and persists
// the flip when the record has a server id. On persistence failure the
// local flip is rolled back; the error is also returned for callers that
// want it, the UI only ever observes state.
func (c *Client) MarkAsRead(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return nil
	}

	idx := c.indexOfLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	prevRead := c.notifications[idx].IsRead
	serverID := c.notifications[idx].ID
	c.notifications[idx].IsRead = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)

	if serverID == "" {
		// Client-only record, nothing to persist.
		return nil
	}

	err := c.doJSON(ctx, http.MethodPost, "/notifications", markReadRequest{
		NotificationIDs: []string{serverID},
	})
	if err != nil {
		c.logger.Errorf("failed to mark notification read: %v", err)
		c.mu.Lock()
		if idx := c.indexOfLocked(id); idx >= 0 {
			c.notifications[idx].IsRead = prevRead
		}
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		return err
	}
	return nil
}

// MarkAllAsRead marks every local record read and persists one batched
// request for the unread records that have server ids. On failure only
// the records in the failed batch are rolled back to unread; client-only
// records stay read locally.
func (c *Client) MarkAllAsRead(ctx context.Context) error {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return nil
	}

	serverIDs := []string{}
	for i := range c.notifications {
		if !c.notifications[i].IsRead && c.notifications[i].ID != "" {
			serverIDs = append(serverIDs, c.notifications[i].ID)
		}
		c.notifications[i].IsRead = true
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)

	if len(serverIDs) == 0 {
		return nil
	}

	err := c.doJSON(ctx, http.MethodPost, "/notifications", markReadRequest{
		NotificationIDs: serverIDs,
	})
	if err != nil {
		c.logger.Errorf("failed to mark all notifications read: %v", err)
		failed := make(map[string]bool, len(serverIDs))
		for _, id := range serverIDs {
			failed[id] = true
		}
		c.mu.Lock()
		for i := range c.notifications {
			if failed[c.notifications[i].ID] {
				c.notifications[i].IsRead = false
			}
		}
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		return err
	}
	return nil
}

// ClearNotifications empties the local list and issues a bulk delete. On
// failure the list is restored to the exact pre-operation snapshot.
func (c *Client) ClearNotifications(ctx context.Context) error {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return nil
	}
	prev := c.notifications
	userID := c.userID
	c.notifications = []models.Notification{}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)

	err := c.doJSON(ctx, http.MethodDelete, "/notifications", clearRequest{UserID: userID})
	if err != nil {
		c.logger.Errorf("failed to clear notifications: %v", err)
		c.mu.Lock()
		c.notifications = prev
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		return err
	}
	return nil
}

// ClearReadNotifications drops read records. When none of them are
// persisted server-side it degrades to a pure local filter with no network
// call; otherwise the read records are removed optimistically and deleted
// on the server, with a full snapshot restore on failure.
func (c *Client) ClearReadNotifications(ctx context.Context) error {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return nil
	}

	serverIDs := []string{}
	for _, n := range c.notifications {
		if n.IsRead && n.ID != "" {
			serverIDs = append(serverIDs, n.ID)
		}
	}

	prev := c.notifications
	unread := []models.Notification{}
	for _, n := range c.notifications {
		if !n.IsRead {
			unread = append(unread, n)
		}
	}
	c.notifications = unread
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)

	if len(serverIDs) == 0 {
		// Nothing persisted to delete; the local filter is the whole
		// operation.
		return nil
	}

	err := c.doJSON(ctx, http.MethodDelete, "/notifications", clearRequest{
		NotificationIDs: serverIDs,
		Action:          "clearRead",
	})
	if err != nil {
		c.logger.Errorf("failed to clear read notifications: %v", err)
		c.mu.Lock()
		c.notifications = prev
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		return err
	}
	return nil
}

// indexOfLocked finds a record by server id or client-generated id.
func (c *Client) indexOfLocked(id string) int {
	for i := range c.notifications {
		if c.notifications[i].Key() == id {
			return i
		}
	}
	return -1
}
