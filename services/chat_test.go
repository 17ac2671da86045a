package services

import (
	"errors"
	"strings"
	"testing"

	"roomease-server/models"
)

func TestOpenOrCreateDedupes(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	chats := NewChatService(db, NewNotificationService(db, nil))

	first, err := chats.OpenOrCreate(tenant, landlord.ID, listing.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Same pair from the other side lands on the same chat.
	second, err := chats.OpenOrCreate(landlord, tenant.ID, listing.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("pair opened two chats: %d and %d", first.ID, second.ID)
	}

	// A different listing context is a different chat.
	other := createListing(t, db, landlord.ID, models.ListingApproved)
	third, err := chats.OpenOrCreate(tenant, landlord.ID, other.ID)
	if err != nil {
		t.Fatalf("open with other listing: %v", err)
	}
	if third.ID == first.ID {
		t.Fatal("distinct listings should not share a chat")
	}
}

func TestCannotChatWithYourself(t *testing.T) {
	db := newTestDB(t)
	tenant := createUser(t, db, "tenant", models.RoleTenant)

	chats := NewChatService(db, NewNotificationService(db, nil))
	if _, err := chats.OpenOrCreate(tenant, tenant.ID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestChatNotGatedOnBooking(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	// No booking request exists; chat must still open and carry messages.
	chats := NewChatService(db, NewNotificationService(db, nil))
	chat, err := chats.OpenOrCreate(tenant, landlord.ID, listing.ID)
	if err != nil {
		t.Fatalf("open without booking: %v", err)
	}
	if _, err := chats.SendMessage(tenant, chat.ID, "is it available?"); err != nil {
		t.Fatalf("send without booking: %v", err)
	}
}

func TestSendMessageUpdatesPreviewAndNotifies(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)

	chats := NewChatService(db, NewNotificationService(db, nil))
	chat, _ := chats.OpenOrCreate(tenant, landlord.ID, 0)

	if _, err := chats.SendMessage(tenant, chat.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for blank message, got %v", err)
	}

	long := strings.Repeat("a", 200)
	if _, err := chats.SendMessage(tenant, chat.ID, long); err != nil {
		t.Fatalf("send: %v", err)
	}

	reloaded, err := chats.Get(tenant, chat.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(reloaded.Messages) != 1 {
		t.Fatalf("want 1 message, got %d", len(reloaded.Messages))
	}
	if len(reloaded.LastMessage) > 123 {
		t.Fatalf("preview not truncated: %d chars", len(reloaded.LastMessage))
	}
	if reloaded.LastMessageTime == nil {
		t.Fatal("LastMessageTime not set")
	}

	notifications := notificationsFor(t, db, landlord.ID)
	if len(notifications) != 1 || notifications[0].Type != models.NotificationMessage {
		t.Fatalf("want one message notification for the other side, got %+v", notifications)
	}
	if got := notificationsFor(t, db, tenant.ID); len(got) != 0 {
		t.Fatalf("sender must not be notified, got %d", len(got))
	}
}

func TestNonParticipantLockedOut(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	stranger := createUser(t, db, "stranger", models.RoleTenant)

	chats := NewChatService(db, NewNotificationService(db, nil))
	chat, _ := chats.OpenOrCreate(tenant, landlord.ID, 0)

	if _, err := chats.Get(stranger, chat.ID); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction on read, got %v", err)
	}
	if _, err := chats.SendMessage(stranger, chat.ID, "let me in"); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction on send, got %v", err)
	}
	if err := chats.Delete(stranger, chat.ID); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction on delete, got %v", err)
	}
}

func TestDeleteRemovesMessages(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)

	chats := NewChatService(db, NewNotificationService(db, nil))
	chat, _ := chats.OpenOrCreate(tenant, landlord.ID, 0)
	chats.SendMessage(tenant, chat.ID, "one")
	chats.SendMessage(landlord, chat.ID, "two")

	if err := chats.Delete(tenant, chat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&models.Message{}).Where("chat_id = ?", chat.ID).Count(&count)
	if count != 0 {
		t.Fatalf("want 0 messages after delete, got %d", count)
	}
	if _, err := chats.Get(tenant, chat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
