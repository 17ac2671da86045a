package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roomease-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatService manages two-party threads and append-only messages. A chat is
// unique per (unordered participant pair, listing); OpenOrCreate inserts
// with ON CONFLICT DO NOTHING and fetches on conflict, so two participants
// clicking "chat" at the same moment both land on the same row.
//
// Messaging is deliberately not gated on booking status: either party can
// open and use a chat before any request is approved.
type ChatService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewChatService(db *gorm.DB, notifier *NotificationService) *ChatService {
	return &ChatService{db: db, notifier: notifier}
}

// OpenOrCreate returns the unique chat for (actor, otherUserID, listingID),
// creating it if absent. listingID 0 means no listing context.
func (cs *ChatService) OpenOrCreate(actor models.Identity, otherUserID, listingID uint) (*models.Chat, error) {
	if otherUserID == actor.ID {
		return nil, fmt.Errorf("%w: cannot open a chat with yourself", ErrValidation)
	}
	var other models.User
	if err := cs.db.First(&other, otherUserID).Error; err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, otherUserID)
	}
	if listingID != 0 {
		var listing models.Listing
		if err := cs.db.First(&listing, listingID).Error; err != nil {
			return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
		}
	}

	low, high := models.NormalizePair(actor.ID, otherUserID)
	chat := models.Chat{UserLowID: low, UserHighID: high, ListingID: listingID}

	err := cs.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chat).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	if err != nil || chat.ID == 0 {
		// Lost the race (or the chat predates this call): fetch the winner.
		if err := cs.db.
			Where("user_low_id = ? AND user_high_id = ? AND listing_id = ?", low, high, listingID).
			First(&chat).Error; err != nil {
			return nil, err
		}
	}
	return cs.Get(actor, chat.ID)
}

// Get loads a chat with its messages in append order. Participants only.
func (cs *ChatService) Get(actor models.Identity, chatID uint) (*models.Chat, error) {
	var chat models.Chat
	err := cs.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("messages.id ASC") }).
		Preload("UserLow").
		Preload("UserHigh").
		First(&chat, chatID).Error
	if err != nil {
		return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
	}
	if !chat.HasParticipant(actor.ID) {
		return nil, fmt.Errorf("%w: you are not a participant of this chat", ErrForbiddenAction)
	}
	return &chat, nil
}

// List returns the caller's chats, most recently active first.
func (cs *ChatService) List(actor models.Identity) ([]models.Chat, error) {
	var chats []models.Chat
	err := cs.db.
		Where("user_low_id = ? OR user_high_id = ?", actor.ID, actor.ID).
		Preload("UserLow").
		Preload("UserHigh").
		Preload("Listing").
		Order("updated_at DESC").
		Find(&chats).Error
	return chats, err
}

// SendMessage appends to the chat, refreshes the denormalized preview, and
// fans out one message notification to the other participant.
func (cs *ChatService) SendMessage(actor models.Identity, chatID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	var chat models.Chat
	if err := cs.db.First(&chat, chatID).Error; err != nil {
		return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
	}
	if !chat.HasParticipant(actor.ID) {
		return nil, fmt.Errorf("%w: you are not a participant of this chat", ErrForbiddenAction)
	}

	message := models.Message{ChatID: chatID, SenderID: actor.ID, Content: content}
	now := time.Now()
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&chat).Updates(map[string]interface{}{
			"last_message":      preview(content),
			"last_message_time": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	var sender models.User
	senderName := "Someone"
	if err := cs.db.First(&sender, actor.ID).Error; err == nil {
		senderName = sender.Name
	}
	cs.notifier.Notify(chat.OtherParticipant(actor.ID), models.NotificationMessage,
		"New message",
		fmt.Sprintf("%s: %s", senderName, preview(content)))

	return &message, nil
}

// Delete removes the chat and all its messages for good. Participants only.
func (cs *ChatService) Delete(actor models.Identity, chatID uint) error {
	var chat models.Chat
	if err := cs.db.First(&chat, chatID).Error; err != nil {
		return fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
	}
	if !chat.HasParticipant(actor.ID) {
		return fmt.Errorf("%w: you are not a participant of this chat", ErrForbiddenAction)
	}
	return cs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&chat).Error
	})
}

func preview(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
