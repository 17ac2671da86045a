package services

import (
	"errors"
	"fmt"
	"time"

	"roomease-server/models"

	"gorm.io/gorm"
)

// BookingService drives BookingRequest.status. Creation leans on the
// idx_booking_active partial unique index rather than check-then-act: the
// insert either lands or comes back as a duplicate-key error, which is the
// only race-free way to keep one active request per (tenant, listing).
type BookingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewBookingService(db *gorm.DB, notifier *NotificationService) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// Create submits a booking request against an approved listing.
func (bs *BookingService) Create(actor models.Identity, listingID uint, message string) (*models.BookingRequest, error) {
	var listing models.Listing
	if err := bs.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if listing.Status != models.ListingApproved {
		return nil, fmt.Errorf("%w: this listing is not open for booking", ErrForbiddenAction)
	}
	if listing.LandlordID == actor.ID {
		return nil, fmt.Errorf("%w: you cannot book your own listing", ErrForbiddenAction)
	}

	request := models.BookingRequest{
		ListingID:  listingID,
		TenantID:   actor.ID,
		LandlordID: listing.LandlordID,
		Status:     models.BookingPending,
		Message:    message,
	}
	if err := bs.db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you already have a request for this listing", ErrDuplicateRequest)
		}
		return nil, err
	}
	return &request, nil
}

// Approve decides pending -> approved. Only the listing's landlord may
// decide, and only once; chat between the two parties was never gated on
// this, so approval unlocks nothing on the messaging side.
func (bs *BookingService) Approve(actor models.Identity, requestID uint) (*models.BookingRequest, error) {
	return bs.decide(actor, requestID, models.BookingApproved)
}

// Reject decides pending -> rejected. An already-open chat stays open.
func (bs *BookingService) Reject(actor models.Identity, requestID uint) (*models.BookingRequest, error) {
	return bs.decide(actor, requestID, models.BookingRejected)
}

func (bs *BookingService) decide(actor models.Identity, requestID uint, next models.BookingStatus) (*models.BookingRequest, error) {
	var request models.BookingRequest
	if err := bs.db.Preload("Listing").First(&request, requestID).Error; err != nil {
		return nil, fmt.Errorf("%w: booking request %d", ErrNotFound, requestID)
	}
	if request.LandlordID != actor.ID {
		return nil, fmt.Errorf("%w: only the listing's landlord can decide this request", ErrForbiddenAction)
	}
	if !request.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: this request has already been decided", ErrInvalidTransition)
	}

	updates := map[string]interface{}{"status": next}
	now := time.Now()
	if next == models.BookingApproved {
		updates["approved_at"] = now
	}

	res := bs.db.Model(&models.BookingRequest{}).
		Where("id = ? AND status = ?", requestID, models.BookingPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: this request has already been decided", ErrInvalidTransition)
	}

	request.Status = next
	title := "your listing"
	if request.Listing != nil {
		title = fmt.Sprintf("%q", request.Listing.Title)
	}

	switch next {
	case models.BookingApproved:
		request.ApprovedAt = &now
		bs.notifier.Notify(request.TenantID, models.NotificationBookingApproved,
			"Booking approved",
			fmt.Sprintf("The landlord approved your booking request for %s.", title))
	case models.BookingRejected:
		bs.notifier.Notify(request.TenantID, models.NotificationBookingRejected,
			"Booking rejected",
			fmt.Sprintf("The landlord declined your booking request for %s.", title))
	}

	return &request, nil
}

// StatusForListing answers the listing page's "do I already have a request
// here" check. Rejected requests do not count.
func (bs *BookingService) StatusForListing(actor models.Identity, listingID uint) (bool, models.BookingStatus, error) {
	var request models.BookingRequest
	err := bs.db.
		Where("tenant_id = ? AND listing_id = ? AND status IN ?",
			actor.ID, listingID, []models.BookingStatus{models.BookingPending, models.BookingApproved}).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	return true, request.Status, nil
}

// ListForTenant returns the caller's own requests, newest first.
func (bs *BookingService) ListForTenant(actor models.Identity) ([]models.BookingRequest, error) {
	var requests []models.BookingRequest
	err := bs.db.Where("tenant_id = ?", actor.ID).
		Preload("Listing").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListForLandlord returns all requests against the caller's listings.
func (bs *BookingService) ListForLandlord(actor models.Identity) ([]models.BookingRequest, error) {
	var requests []models.BookingRequest
	err := bs.db.Where("landlord_id = ?", actor.ID).
		Preload("Listing").
		Preload("Tenant").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListForListing returns the requests for one listing, landlord-only.
func (bs *BookingService) ListForListing(actor models.Identity, listingID uint) ([]models.BookingRequest, error) {
	var listing models.Listing
	if err := bs.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if listing.LandlordID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not your listing", ErrForbiddenAction)
	}
	var requests []models.BookingRequest
	err := bs.db.Where("listing_id = ?", listingID).
		Preload("Tenant").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
