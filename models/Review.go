package models

import (
	"gorm.io/gorm"
)

// Review is a tenant's review of an approved listing. One review per
// (reviewer, listing), enforced by the composite unique index.
type Review struct {
	gorm.Model
	ListingID    uint   `json:"listingID" gorm:"not null;uniqueIndex:idx_review_once"`
	ReviewerID   uint   `json:"reviewerID" gorm:"not null;uniqueIndex:idx_review_once"`
	Rating       int    `json:"rating" gorm:"not null"`
	Comment      string `json:"comment" gorm:"size:2000"`
	HelpfulCount int    `json:"helpfulCount" gorm:"default:0"`

	Reviewer *User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Listing  *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
