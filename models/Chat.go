package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a two-party thread, optionally tied to a listing. The participant
// pair is stored normalized (lower id first) so the unordered pair plus the
// listing forms a single unique key; ListingID 0 means "no listing" so the
// uniqueness constraint also covers chats without listing context (NULLs
// would not collide in a unique index).
type Chat struct {
	gorm.Model
	UserLowID  uint `json:"userLowID" gorm:"not null;uniqueIndex:idx_chat_pair_listing"`
	UserHighID uint `json:"userHighID" gorm:"not null;uniqueIndex:idx_chat_pair_listing"`
	ListingID  uint `json:"listingID,omitempty" gorm:"uniqueIndex:idx_chat_pair_listing"`

	// Denormalized for list rendering, updated on every send.
	LastMessage     string     `json:"lastMessage" gorm:"size:500"`
	LastMessageTime *time.Time `json:"lastMessageTime"`

	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
	UserLow  *User     `json:"userLow,omitempty" gorm:"foreignKey:UserLowID"`
	UserHigh *User     `json:"userHigh,omitempty" gorm:"foreignKey:UserHighID"`
	Listing  *Listing  `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

// NormalizePair orders an unordered participant pair for storage.
func NormalizePair(a, b uint) (low, high uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Chat) HasParticipant(userID uint) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

// OtherParticipant returns the peer of userID in this chat.
func (c *Chat) OtherParticipant(userID uint) uint {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

// Message is append-only and owned by its chat; it is never edited or
// reordered.
type Message struct {
	gorm.Model
	ChatID   uint   `json:"chatID" gorm:"index;not null"`
	SenderID uint   `json:"senderID" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
}
