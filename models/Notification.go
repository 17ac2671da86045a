package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationMessage         NotificationType = "message"
	NotificationListingApproved NotificationType = "listing_approved"
	NotificationListingRejected NotificationType = "listing_rejected"
	NotificationBookingApproved NotificationType = "booking_approved"
	NotificationBookingRejected NotificationType = "booking_rejected"
	NotificationNewReview       NotificationType = "new_review"
	NotificationReportUpdate    NotificationType = "report_update"
	NotificationGeneric         NotificationType = "generic"
)

// Notification is created only by the fan-out dispatcher and mutated only
// by its recipient (mark read / delete).
type Notification struct {
	gorm.Model
	UserID uint             `json:"userID" gorm:"not null;index"`
	Type   NotificationType `json:"type" gorm:"type:varchar(32);index"`
	Title  string           `json:"title" gorm:"size:100"`
	Body   string           `json:"body" gorm:"size:500"`
	IsRead bool             `json:"isRead" gorm:"default:false;index"`
	ReadAt *time.Time       `json:"readAt"`
}
