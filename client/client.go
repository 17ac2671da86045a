package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"roomease-server/models"
)

var (
	// ErrSessionExpired: the server answered 401; the token is no longer
	// valid and every poller owned by the session should stop.
	ErrSessionExpired = errors.New("session expired")
	// ErrTransient: network failure or 5xx; safe to retry on the next
	// cycle, and user-initiated writes should surface it as retryable.
	ErrTransient = errors.New("transient error")
)

// APIError is a terminal 4xx answer carrying the server's stable error
// code and user-facing message.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client is the typed HTTP client for the roomease API. All calls carry a
// bounded timeout via the supplied context plus the transport timeout, so
// a hung request can never stall the next poll cycle.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.requestTimeout()},
	}
}

// SetToken replaces the bearer token (after re-auth).
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrSessionExpired
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server answered %d", ErrTransient, resp.StatusCode)
	case resp.StatusCode >= 400:
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Code = "unknown"
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrTransient, err)
	}
	return nil
}

// Chats fetches the caller's chat list.
func (c *Client) Chats(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat
	err := c.do(ctx, http.MethodGet, "/api/chat", nil, &chats)
	return chats, err
}

// Chat fetches one chat with its full message history.
func (c *Client) Chat(ctx context.Context, chatID uint) (*models.Chat, error) {
	var chat models.Chat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/chat/%d", chatID), nil, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// StartChat opens (or returns the existing) chat with another user.
func (c *Client) StartChat(ctx context.Context, otherUserID, listingID uint) (*models.Chat, error) {
	body := map[string]interface{}{"otherUserId": otherUserID}
	if listingID != 0 {
		body["listingId"] = listingID
	}
	var chat models.Chat
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// SendMessage appends a message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID uint, content string) (*models.Message, error) {
	var message models.Message
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/%d/messages", chatID),
		map[string]string{"content": content}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Notifications fetches the caller's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications)
	return notifications, err
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID uint) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notificationID), nil, nil)
}

// MarkAllNotificationsRead sweeps every unread notification.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/mark/all-read", nil, nil)
}

// UnreadCount fetches the badge counter.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var resp struct {
		UnreadCount int64 `json:"unreadCount"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// CreateBooking submits a booking request for a listing.
func (c *Client) CreateBooking(ctx context.Context, listingID uint, message string) (*models.BookingRequest, error) {
	var request models.BookingRequest
	err := c.do(ctx, http.MethodPost, "/api/bookings",
		map[string]interface{}{"listingId": listingID, "message": message}, &request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// BookingRequestsForListing fetches the landlord's request queue for one
// listing.
func (c *Client) BookingRequestsForListing(ctx context.Context, listingID uint) ([]models.BookingRequest, error) {
	var requests []models.BookingRequest
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/listing/%d", listingID), nil, &requests)
	return requests, err
}
