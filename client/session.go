package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roomease-server/models"
)

// Session ties a logged-in identity to its API client and owns every
// poller started on its behalf. Logout cancels the session context,
// which stops all pollers and discards their in-flight fetches.
type Session struct {
	Client   *Client
	Identity models.Identity

	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pollers map[string]*Poller
}

func NewSession(cfg Config, identity models.Identity) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		Client:   NewClient(cfg),
		Identity: identity,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		pollers:  make(map[string]*Poller),
	}
}

// WatchNotifications polls the notification list on the standard cadence.
func (s *Session) WatchNotifications(onUpdate func([]models.Notification)) *Poller {
	return s.watch("notifications", s.cfg.NotificationsInterval(),
		func(ctx context.Context) (interface{}, error) {
			return s.Client.Notifications(ctx)
		},
		func(v interface{}) {
			if onUpdate != nil {
				onUpdate(v.([]models.Notification))
			}
		})
}

// WatchUnreadCount polls the badge counter on a slow cadence.
func (s *Session) WatchUnreadCount(onUpdate func(int64)) *Poller {
	return s.watch("unread-count", s.cfg.UnreadBadgeInterval(),
		func(ctx context.Context) (interface{}, error) {
			return s.Client.UnreadCount(ctx)
		},
		func(v interface{}) {
			if onUpdate != nil {
				onUpdate(v.(int64))
			}
		})
}

// WatchChats polls the chat list.
func (s *Session) WatchChats(onUpdate func([]models.Chat)) *Poller {
	return s.watch("chats", s.cfg.ChatListInterval(),
		func(ctx context.Context) (interface{}, error) {
			return s.Client.Chats(ctx)
		},
		func(v interface{}) {
			if onUpdate != nil {
				onUpdate(v.([]models.Chat))
			}
		})
}

// WatchChat polls one open conversation on the fast cadence. Stop the
// returned poller when the conversation is closed.
func (s *Session) WatchChat(chatID uint, onUpdate func(*models.Chat)) *Poller {
	return s.watch(fmt.Sprintf("chat-%d", chatID), s.cfg.ActiveChatInterval(),
		func(ctx context.Context) (interface{}, error) {
			return s.Client.Chat(ctx, chatID)
		},
		func(v interface{}) {
			if onUpdate != nil {
				onUpdate(v.(*models.Chat))
			}
		})
}

// WatchBookingRequests polls a landlord's request queue for one listing.
func (s *Session) WatchBookingRequests(listingID uint, onUpdate func([]models.BookingRequest)) *Poller {
	return s.watch(fmt.Sprintf("bookings-%d", listingID), s.cfg.ChatListInterval(),
		func(ctx context.Context) (interface{}, error) {
			return s.Client.BookingRequestsForListing(ctx, listingID)
		},
		func(v interface{}) {
			if onUpdate != nil {
				onUpdate(v.([]models.BookingRequest))
			}
		})
}

func (s *Session) watch(name string, interval time.Duration, fetch FetchFunc, onUpdate func(interface{})) *Poller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pollers[name]; ok {
		return existing
	}
	p := NewPoller(name, interval, fetch)
	p.OnUpdate(onUpdate)
	s.pollers[name] = p
	p.Start(s.ctx)
	return p
}

// StopWatch stops and forgets one poller by name.
func (s *Session) StopWatch(name string) {
	s.mu.Lock()
	p, ok := s.pollers[name]
	delete(s.pollers, name)
	s.mu.Unlock()
	if ok {
		p.Stop()
	}
}

// Pollers returns the currently running pollers.
func (s *Session) Pollers() []*Poller {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Poller, 0, len(s.pollers))
	for _, p := range s.pollers {
		out = append(out, p)
	}
	return out
}

// Logout tears the session down: every poller stops, cached snapshots
// are dropped with them, and the token is cleared so no further request
// can go out authenticated.
func (s *Session) Logout() {
	s.cancel()

	s.mu.Lock()
	pollers := s.pollers
	s.pollers = make(map[string]*Poller)
	s.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
	s.Client.SetToken("")
}
