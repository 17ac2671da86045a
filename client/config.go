package client

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default cadences, matching what the web client uses: an open chat
// refreshes fastest, the unread badge slowest.
const (
	DefaultActiveChatInterval    = 3 * time.Second
	DefaultChatListInterval      = 5 * time.Second
	DefaultNotificationsInterval = 5 * time.Second
	DefaultUnreadBadgeInterval   = 30 * time.Second
	DefaultRequestTimeout        = 10 * time.Second
)

type Intervals struct {
	ActiveChatSeconds    int `yaml:"active_chat_seconds"`
	ChatListSeconds      int `yaml:"chat_list_seconds"`
	NotificationsSeconds int `yaml:"notifications_seconds"`
	UnreadBadgeSeconds   int `yaml:"unread_badge_seconds"`
}

type Config struct {
	BaseURL               string    `yaml:"base_url"`
	Token                 string    `yaml:"token"`
	RequestTimeoutSeconds int       `yaml:"request_timeout_seconds"`
	Intervals             Intervals `yaml:"intervals"`
}

// LoadConfig reads a YAML config file; missing values keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) requestTimeout() time.Duration {
	return secondsOr(c.RequestTimeoutSeconds, DefaultRequestTimeout)
}

func (c Config) ActiveChatInterval() time.Duration {
	return secondsOr(c.Intervals.ActiveChatSeconds, DefaultActiveChatInterval)
}

func (c Config) ChatListInterval() time.Duration {
	return secondsOr(c.Intervals.ChatListSeconds, DefaultChatListInterval)
}

func (c Config) NotificationsInterval() time.Duration {
	return secondsOr(c.Intervals.NotificationsSeconds, DefaultNotificationsInterval)
}

func (c Config) UnreadBadgeInterval() time.Duration {
	return secondsOr(c.Intervals.UnreadBadgeSeconds, DefaultUnreadBadgeInterval)
}

func secondsOr(s int, fallback time.Duration) time.Duration {
	if s <= 0 {
		return fallback
	}
	return time.Duration(s) * time.Second
}
