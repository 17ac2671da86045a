package models

import (
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingApproved, BookingRejected},
	BookingApproved: {},
	BookingRejected: {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

// Active reports whether the request blocks a new one for the same
// (tenant, listing) pair. Rejected requests do not block resubmission.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingApproved
}

// BookingRequest is a tenant's request to proceed with a listing.
// LandlordID is denormalized from the listing at creation so the deciding
// side never needs a join. At most one active request exists per
// (tenant_id, listing_id); the partial unique index idx_booking_active
// enforces that at the store.
type BookingRequest struct {
	gorm.Model
	ListingID  uint          `json:"listingID" gorm:"index;not null"`
	TenantID   uint          `json:"tenantID" gorm:"index;not null"`
	LandlordID uint          `json:"landlordID" gorm:"index;not null"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Message    string        `json:"message" gorm:"size:1000"`
	ApprovedAt *time.Time    `json:"approvedAt"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Tenant  *User    `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
