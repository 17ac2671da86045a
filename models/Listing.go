package models

import (
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"
)

// listingTransitions is the legal-transition table for moderation.
// Approved and rejected are terminal; nothing transitions back to pending.
var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingPending:  {ListingApproved, ListingRejected},
	ListingApproved: {},
	ListingRejected: {},
}

func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	return slices.Contains(listingTransitions[s], next)
}

type Listing struct {
	gorm.Model
	LandlordID  uint           `json:"landlordID" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"size:200"`
	Description string         `json:"description" gorm:"type:text"`
	Location    string         `json:"location" gorm:"size:200;index"`
	Price       float32        `json:"price"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   float32        `json:"bathrooms"`
	Images      datatypes.JSON `json:"images"` // JSON array of URLs
	Status      ListingStatus  `json:"status" gorm:"type:varchar(20);default:pending;index"`
	// RejectionReason is set iff Status is rejected.
	RejectionReason string `json:"rejectionReason,omitempty" gorm:"size:500"`

	Landlord *User `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
}

// VisibleTo implements the moderation visibility rule: a non-approved
// listing can be read only by its owner or an admin.
func (l *Listing) VisibleTo(actor Identity) bool {
	if l.Status == ListingApproved {
		return true
	}
	return actor.IsAdmin() || actor.ID == l.LandlordID
}
