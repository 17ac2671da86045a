package services

import (
	"errors"
	"fmt"
	"strings"

	"roomease-server/models"

	"gorm.io/gorm"
)

// ReviewService lets tenants review approved listings, one review per
// (reviewer, listing). New reviews fan out to the listing's landlord.
type ReviewService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReviewService(db *gorm.DB, notifier *NotificationService) *ReviewService {
	return &ReviewService{db: db, notifier: notifier}
}

type CreateReviewInput struct {
	ListingID uint   `json:"listingId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"lt=2000"`
}

func (rs *ReviewService) Create(actor models.Identity, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	var listing models.Listing
	if err := rs.db.First(&listing, input.ListingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, input.ListingID)
	}
	if listing.Status != models.ListingApproved {
		return nil, fmt.Errorf("%w: this listing is not public", ErrForbiddenAction)
	}
	if listing.LandlordID == actor.ID {
		return nil, fmt.Errorf("%w: you cannot review your own listing", ErrForbiddenAction)
	}

	review := models.Review{
		ListingID:  input.ListingID,
		ReviewerID: actor.ID,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := rs.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you already reviewed this listing", ErrDuplicateRequest)
		}
		return nil, err
	}

	rs.notifier.Notify(listing.LandlordID, models.NotificationNewReview,
		"New review",
		fmt.Sprintf("Your listing %q received a %d-star review.", listing.Title, input.Rating))
	return &review, nil
}

// ListForListing is public for approved listings.
func (rs *ReviewService) ListForListing(listingID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := rs.db.Where("listing_id = ?", listingID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (rs *ReviewService) ListMine(actor models.Identity) ([]models.Review, error) {
	var reviews []models.Review
	err := rs.db.Where("reviewer_id = ?", actor.ID).
		Preload("Listing").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// MarkHelpful bumps the helpful counter. Any authenticated user.
func (rs *ReviewService) MarkHelpful(actor models.Identity, reviewID uint) (*models.Review, error) {
	var review models.Review
	if err := rs.db.First(&review, reviewID).Error; err != nil {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	if err := rs.db.Model(&review).
		Update("helpful_count", gorm.Expr("helpful_count + 1")).Error; err != nil {
		return nil, err
	}
	review.HelpfulCount++
	return &review, nil
}
