package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomease-server/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var bgContext = context.Background()

// NotificationService is the fan-out dispatcher. Every state-machine
// transition that must reach a user goes through Notify, which writes
// exactly one row per call - no batching, no dedup across events.
//
// The unread count is kept as a Redis counter so the 30s badge poll stays a
// single O(1) read instead of a table scan. The counter is a projection:
// when Redis is absent or the key is missing we fall back to a COUNT and
// reseed.
type NotificationService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewNotificationService(db *gorm.DB, rdb *redis.Client) *NotificationService {
	return &NotificationService{db: db, rdb: rdb}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}

// Notify creates one notification row addressed to recipientID.
func (ns *NotificationService) Notify(recipientID uint, typ models.NotificationType, title, body string) (*models.Notification, error) {
	n := models.Notification{
		UserID: recipientID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if err := ns.db.Create(&n).Error; err != nil {
		return nil, err
	}
	ns.bumpUnread(recipientID, 1)
	return &n, nil
}

// List returns the caller's notifications, newest first.
func (ns *NotificationService) List(actor models.Identity) ([]models.Notification, error) {
	var notifications []models.Notification
	err := ns.db.Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead marks one notification as read. Only the recipient may do so;
// marking an already-read notification is a no-op, not an error.
func (ns *NotificationService) MarkRead(actor models.Identity, notificationID uint) (*models.Notification, error) {
	var n models.Notification
	if err := ns.db.First(&n, notificationID).Error; err != nil {
		return nil, fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	if n.UserID != actor.ID {
		return nil, fmt.Errorf("%w: not your notification", ErrForbiddenAction)
	}
	if n.IsRead {
		return &n, nil
	}
	now := time.Now()
	if err := ns.db.Model(&n).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, err
	}
	n.IsRead = true
	n.ReadAt = &now
	ns.bumpUnread(actor.ID, -1)
	return &n, nil
}

// MarkAllRead is a bulk idempotent sweep over the caller's unread rows.
func (ns *NotificationService) MarkAllRead(actor models.Identity) error {
	now := time.Now()
	err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
	if err != nil {
		return err
	}
	ns.setUnread(actor.ID, 0)
	return nil
}

// Delete removes a notification. Recipient only.
func (ns *NotificationService) Delete(actor models.Identity, notificationID uint) error {
	var n models.Notification
	if err := ns.db.First(&n, notificationID).Error; err != nil {
		return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	if n.UserID != actor.ID {
		return fmt.Errorf("%w: not your notification", ErrForbiddenAction)
	}
	if err := ns.db.Delete(&n).Error; err != nil {
		return err
	}
	if !n.IsRead {
		ns.bumpUnread(actor.ID, -1)
	}
	return nil
}

// UnreadCount serves the badge poll. Redis first, COUNT fallback + reseed.
func (ns *NotificationService) UnreadCount(actor models.Identity) (int64, error) {
	if ns.rdb != nil {
		if count, err := ns.rdb.Get(bgContext, unreadKey(actor.ID)).Int64(); err == nil {
			return count, nil
		}
	}
	var count int64
	err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	ns.setUnread(actor.ID, count)
	return count, nil
}

// PurgeOlderThan removes notifications past the retention window. Run from
// the maintenance cron, not from request paths.
func (ns *NotificationService) PurgeOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res := ns.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("notifications: purged %d rows older than %s", res.RowsAffected, cutoff.Format(time.RFC3339))
	}
	return res.RowsAffected, nil
}

func (ns *NotificationService) bumpUnread(userID uint, delta int64) {
	if ns.rdb == nil {
		return
	}
	// Only adjust an existing counter; a missing key is reseeded from SQL
	// on the next UnreadCount, so IncrBy on a cold key would double-count.
	if exists, err := ns.rdb.Exists(bgContext, unreadKey(userID)).Result(); err != nil || exists == 0 {
		return
	}
	if err := ns.rdb.IncrBy(bgContext, unreadKey(userID), delta).Err(); err != nil {
		log.Printf("notifications: unread counter bump failed for user %d: %v", userID, err)
	}
}

func (ns *NotificationService) setUnread(userID uint, count int64) {
	if ns.rdb == nil {
		return
	}
	if err := ns.rdb.Set(bgContext, unreadKey(userID), count, 24*time.Hour).Err(); err != nil {
		log.Printf("notifications: unread counter set failed for user %d: %v", userID, err)
	}
}
