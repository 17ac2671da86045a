package services

import (
	"fmt"
	"strings"

	"roomease-server/models"

	"gorm.io/gorm"
)

// ModerationService drives Listing.status: a landlord submits into pending,
// an admin decides once, and both decisions fan out to the owner. The
// decision paths are guarded by a conditional UPDATE on the current status,
// so two admins racing on the same listing cannot both win and the loser
// never fires a second notification.
type ModerationService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewModerationService(db *gorm.DB, notifier *NotificationService) *ModerationService {
	return &ModerationService{db: db, notifier: notifier}
}

type SubmitListingInput struct {
	Title       string  `json:"title" validate:"required,lt=200"`
	Description string  `json:"description" validate:"lt=5000"`
	Location    string  `json:"location" validate:"required,lt=200"`
	Price       float32 `json:"price" validate:"gte=0"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   float32 `json:"bathrooms" validate:"gte=0"`
	Images      []byte  `json:"-"`
}

// Submit creates a listing in pending. Landlords only.
func (ms *ModerationService) Submit(actor models.Identity, input SubmitListingInput) (*models.Listing, error) {
	if !actor.IsLandlord() {
		return nil, fmt.Errorf("%w: only landlords can create listings", ErrForbiddenRole)
	}
	listing := models.Listing{
		LandlordID:  actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Price:       input.Price,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		Images:      input.Images,
		Status:      models.ListingPending,
	}
	if err := ms.db.Create(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Approve moves pending -> approved and notifies the owning landlord.
func (ms *ModerationService) Approve(actor models.Identity, listingID uint) (*models.Listing, error) {
	return ms.decide(actor, listingID, models.ListingApproved, "")
}

// Reject moves pending -> rejected, recording a mandatory reason.
func (ms *ModerationService) Reject(actor models.Identity, listingID uint, reason string) (*models.Listing, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}
	return ms.decide(actor, listingID, models.ListingRejected, reason)
}

func (ms *ModerationService) decide(actor models.Identity, listingID uint, next models.ListingStatus, reason string) (*models.Listing, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can decide listings", ErrForbiddenRole)
	}

	var listing models.Listing
	if err := ms.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if !listing.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: this listing has already been decided", ErrInvalidTransition)
	}

	updates := map[string]interface{}{"status": next}
	if next == models.ListingRejected {
		updates["rejection_reason"] = reason
	}

	// Guard on the prior status so a concurrent second decision affects
	// zero rows and fails instead of silently double-firing the fan-out.
	res := ms.db.Model(&models.Listing{}).
		Where("id = ? AND status = ?", listingID, models.ListingPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: this listing has already been decided", ErrInvalidTransition)
	}

	listing.Status = next
	listing.RejectionReason = reason

	switch next {
	case models.ListingApproved:
		ms.notifier.Notify(listing.LandlordID, models.NotificationListingApproved,
			"Listing approved",
			fmt.Sprintf("Your listing %q has been approved and is now visible to tenants.", listing.Title))
	case models.ListingRejected:
		ms.notifier.Notify(listing.LandlordID, models.NotificationListingRejected,
			"Listing rejected",
			fmt.Sprintf("Your listing %q was rejected: %s", listing.Title, reason))
	}

	return &listing, nil
}
