// Package notifclient implements the reconciling realtime notification
// client: it fetches the authoritative notification list over REST, keeps a
// WebSocket connection open for live pushes, merges pushed messages into
// local state, and exposes read/clear mutations that update local state
// optimistically and roll back when persistence fails.
package notifclient

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/adscreener/adscreener/models"
)

// ConnState is the connection lifecycle state machine.
type ConnState int

const (
	StateIdle ConnState = iota
	StateConnecting
	StateOpen
	StateReconnectScheduled
	StateClosed
)

const (
	maxNotifications      = 50
	defaultReconnectDelay = 5 * time.Second

	defaultTitle   = "Notification"
	defaultMessage = "You have a new update."
)

// Handler consumes a typed control message. The raw JSON of the frame's
// "data" field (or the whole frame when there is none) is passed through.
type Handler func(data json.RawMessage)

// Snapshot is the state aggregate exposed to the consuming UI.
type Snapshot struct {
	Notifications []models.Notification
	IsLoading     bool
	IsConnected   bool
}

// Options configures a Client.
type Options struct {
	// UserID is required for any activity. Empty disables the client.
	UserID string
	// Role is appended to the connection URL for server-side filtering.
	Role string
	// APIBaseURL is the REST endpoint base, e.g. http://localhost:8080.
	APIBaseURL string
	// RealtimeURL is the WebSocket endpoint base, e.g. ws://localhost:8080/ws.
	RealtimeURL string
	// AuthToken is sent as a Bearer header on REST calls and a token query
	// param on the WebSocket URL.
	AuthToken string
	// Handlers maps message-type names to typed callbacks. Frames whose
	// type matches are consumed entirely and never enter the list.
	Handlers map[string]Handler
	// ReconnectDelay defaults to 5 seconds.
	ReconnectDelay time.Duration
	// OnChange, when set, is invoked with a fresh snapshot after every
	// state change.
	OnChange func(Snapshot)

	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client owns one WebSocket connection and the local notification list.
// Safe for use from multiple goroutines.
type Client struct {
	mu sync.Mutex

	userID      string
	role        string
	apiBaseURL  string
	realtimeURL string
	authToken   string

	handlers       map[string]Handler
	httpClient     *http.Client
	logger         *logrus.Logger
	reconnectDelay time.Duration
	onChange       func(Snapshot)
	dialer         *websocket.Dialer

	conn       *websocket.Conn
	state      ConnState
	retryTimer *time.Timer

	notifications []models.Notification
	isLoading     bool
	isConnected   bool
}

func New(opts Options) *Client {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	handlers := make(map[string]Handler, len(opts.Handlers))
	for name, h := range opts.Handlers {
		handlers[name] = h
	}

	return &Client{
		userID:         opts.UserID,
		role:           opts.Role,
		apiBaseURL:     opts.APIBaseURL,
		realtimeURL:    opts.RealtimeURL,
		authToken:      opts.AuthToken,
		handlers:       handlers,
		httpClient:     opts.HTTPClient,
		logger:         opts.Logger,
		reconnectDelay: opts.ReconnectDelay,
		onChange:       opts.OnChange,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// SetHandler registers (or replaces) a typed callback so late-bound
// handlers still fire.
func (c *Client) SetHandler(msgType string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == nil {
		delete(c.handlers, msgType)
		return
	}
	c.handlers[msgType] = h
}

// State reports the connection lifecycle state.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the exposed state aggregate.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Client) snapshotLocked() Snapshot {
	notifs := make([]models.Notification, len(c.notifications))
	copy(notifs, c.notifications)
	return Snapshot{
		Notifications: notifs,
		IsLoading:     c.isLoading,
		IsConnected:   c.isConnected,
	}
}

// notifyChange invokes OnChange outside the lock.
func (c *Client) notifyChange(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

// SetUser rebinds the client to a user. An empty id tears down the
// connection and disables all operations; a non-empty id reconnects.
func (c *Client) SetUser(userID, role string) {
	c.mu.Lock()
	if c.userID == userID && c.role == role {
		c.mu.Unlock()
		return
	}
	c.userID = userID
	c.role = role
	c.teardownLocked(StateIdle)
	c.mu.Unlock()

	if userID != "" {
		c.Connect()
	}
}

// Disconnect closes the connection with a normal closure code. No
// reconnect is scheduled for a closure the client itself initiated.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.teardownLocked(StateClosed)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)
}

func (c *Client) teardownLocked(next ConnState) {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	if c.conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		c.conn.Close()
		c.conn = nil
	}
	c.isConnected = false
	c.state = next
}

// Connect opens the WebSocket connection. It is a no-op without a bound
// user id, and idempotent while a socket is open or connecting.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return
	}
	if c.state == StateOpen || c.state == StateConnecting {
		c.mu.Unlock()
		return
	}
	// Discard a stale socket handle from a previous attempt.
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateConnecting
	userID := c.userID
	endpoint := c.connectionURL()
	c.mu.Unlock()

	conn, _, err := c.dialer.Dial(endpoint, nil)

	c.mu.Lock()
	if c.userID != userID || c.state != StateConnecting {
		// Torn down or rebound while dialing.
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		c.logger.Errorf("realtime connect failed: %v", err)
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return
	}

	c.conn = conn
	c.state = StateOpen
	c.isConnected = true
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notifyChange(snap)

	go c.readLoop(conn)
	// Fresh fetch on every open covers both initial load and
	// post-reconnect catch-up.
	go c.refreshForUser(userID)
}

func (c *Client) connectionURL() string {
	query := url.Values{}
	query.Set("userId", c.userID)
	if c.role != "" {
		query.Set("role", c.role)
	}
	if c.authToken != "" {
		query.Set("token", c.authToken)
	}
	return c.realtimeURL + "?" + query.Encode()
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(conn, closeCode(err))
			return
		}
		c.handleMessage(raw)
	}
}

// closeCode extracts the closure code; a read error without a close frame
// counts as an abnormal closure.
func closeCode(err error) int {
	if ce, ok := err.(*websocket.CloseError); ok {
		return ce.Code
	}
	return websocket.CloseAbnormalClosure
}

func (c *Client) handleClose(conn *websocket.Conn, code int) {
	c.mu.Lock()
	if c.conn != conn {
		// Stale socket callback; a newer connection owns the state now.
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.isConnected = false

	expected := code == websocket.CloseNormalClosure || code == websocket.CloseNoStatusReceived
	if !expected && c.userID != "" {
		c.logger.Warnf("realtime connection lost (code %d), reconnecting in %v", code, c.reconnectDelay)
		c.scheduleReconnectLocked()
	} else {
		c.state = StateClosed
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notifyChange(snap)
}

func (c *Client) scheduleReconnectLocked() {
	c.state = StateReconnectScheduled
	if c.retryTimer != nil {
		c.retryTimer.Stop()
	}
	c.retryTimer = time.AfterFunc(c.reconnectDelay, func() {
		c.mu.Lock()
		if c.state != StateReconnectScheduled {
			c.mu.Unlock()
			return
		}
		c.state = StateIdle
		c.mu.Unlock()
		c.Connect()
	})
}
