package notifclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/adscreener/adscreener/models"
)

// envelope matches the server's JSON response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Refresh fetches the authoritative notification list and replaces local
// state with it. Failures are logged and leave local state unchanged.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()
	if userID == "" {
		return nil
	}
	return c.refresh(ctx, userID)
}

func (c *Client) refreshForUser(userID string) {
	_ = c.refresh(context.Background(), userID)
}

// refresh tags the request with the user id it was issued for; a response
// arriving after the client was rebound to another user is discarded.
func (c *Client) refresh(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.isLoading = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)

	fetched, err := c.fetchNotifications(ctx)

	c.mu.Lock()
	c.isLoading = false
	if err != nil {
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		c.logger.Errorf("failed to fetch notifications: %v", err)
		return err
	}
	if c.userID != userID {
		// Stale response for a previous user; discard.
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notifyChange(snap)
		return nil
	}
	// The server fetch is authoritative and wins over in-flight pushes.
	if len(fetched) > maxNotifications {
		fetched = fetched[:maxNotifications]
	}
	c.notifications = fetched
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)
	return nil
}

func (c *Client) fetchNotifications(ctx context.Context) ([]models.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/notifications", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching notifications", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	notifs := []models.Notification{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &notifs); err != nil {
			return nil, fmt.Errorf("decoding notification list: %w", err)
		}
	}
	return notifs, nil
}

// doJSON issues a mutation request and fails on any non-2xx response.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d on %s %s", resp.StatusCode, method, path)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
