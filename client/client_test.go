package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomease-server/models"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(Config{BaseURL: server.URL, Token: "tok"}), server
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := c.Chats(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestServerErrorsAreTransient(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := c.Notifications(context.Background())
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("want ErrTransient for 502, got %v", err)
	}
}

func TestClientErrorsAreTerminal(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"duplicate_request","message":"you already have a request for this listing"}`))
	})
	defer server.Close()

	_, err := c.CreateBooking(context.Background(), 7, "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if errors.Is(err, ErrTransient) {
		t.Fatal("a 409 must not look retryable")
	}
	if apiErr.Code != "duplicate_request" || apiErr.Status != http.StatusConflict {
		t.Fatalf("wrong mapping: %+v", apiErr)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unreadCount":3}`))
	})
	defer server.Close()

	count, err := c.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 3 {
		t.Fatalf("want 3, got %d", count)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("token not attached: %q", gotAuth)
	}
}

func TestLogoutStopsAllPollers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unreadCount":0}`))
	}))
	defer server.Close()

	session := NewSession(Config{BaseURL: server.URL, Token: "tok"}, models.Identity{ID: 1})
	session.WatchUnreadCount(nil)
	session.WatchNotifications(nil)

	if got := len(session.Pollers()); got != 2 {
		t.Fatalf("want 2 pollers, got %d", got)
	}
	session.Logout()
	if got := len(session.Pollers()); got != 0 {
		t.Fatalf("want 0 pollers after logout, got %d", got)
	}
}
