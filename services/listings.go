package services

import (
	"fmt"
	"strings"

	"roomease-server/models"

	"gorm.io/gorm"
)

// ListingService covers the read/update/delete side of listings; creation
// and status transitions belong to ModerationService.
type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

type ListingFilters struct {
	Location string
	MinPrice float32
	MaxPrice float32
	Bedrooms int
	Search   string
}

// ListApproved is the public browse query: approved listings only.
func (ls *ListingService) ListApproved(filters ListingFilters) ([]models.Listing, error) {
	q := ls.db.Where("status = ?", models.ListingApproved)
	if filters.Location != "" {
		q = q.Where("lower(location) LIKE ?", "%"+strings.ToLower(filters.Location)+"%")
	}
	if filters.MinPrice > 0 {
		q = q.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		q = q.Where("price <= ?", filters.MaxPrice)
	}
	if filters.Bedrooms > 0 {
		q = q.Where("bedrooms >= ?", filters.Bedrooms)
	}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like)
	}
	var listings []models.Listing
	err := q.Preload("Landlord").Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// Get enforces the visibility rule: non-approved listings are readable only
// by their owner or an admin.
func (ls *ListingService) Get(actor models.Identity, listingID uint) (*models.Listing, error) {
	var listing models.Listing
	if err := ls.db.Preload("Landlord").First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if !listing.VisibleTo(actor) {
		// Hidden listings should be indistinguishable from missing ones.
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	return &listing, nil
}

// ListMine returns the landlord's own listings in every status.
func (ls *ListingService) ListMine(actor models.Identity) ([]models.Listing, error) {
	var listings []models.Listing
	err := ls.db.Where("landlord_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// ListByStatus is the admin moderation queue.
func (ls *ListingService) ListByStatus(actor models.Identity, status models.ListingStatus) ([]models.Listing, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbiddenRole)
	}
	q := ls.db.Preload("Landlord").Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var listings []models.Listing
	err := q.Find(&listings).Error
	return listings, err
}

type UpdateListingInput struct {
	Title       string  `json:"title" validate:"omitempty,lt=200"`
	Description string  `json:"description" validate:"lt=5000"`
	Location    string  `json:"location" validate:"omitempty,lt=200"`
	Price       float32 `json:"price" validate:"gte=0"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   float32 `json:"bathrooms" validate:"gte=0"`
}

// Update edits the mutable property fields. Owner only; the moderation
// status is untouched (there is no resubmission flow).
func (ls *ListingService) Update(actor models.Identity, listingID uint, input UpdateListingInput) (*models.Listing, error) {
	var listing models.Listing
	if err := ls.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if listing.LandlordID != actor.ID {
		return nil, fmt.Errorf("%w: not your listing", ErrForbiddenAction)
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.Price > 0 {
		updates["price"] = input.Price
	}
	if input.Bedrooms > 0 {
		updates["bedrooms"] = input.Bedrooms
	}
	if input.Bathrooms > 0 {
		updates["bathrooms"] = input.Bathrooms
	}
	if len(updates) > 0 {
		if err := ls.db.Model(&listing).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &listing, nil
}

// Delete removes a listing. Owner or admin.
func (ls *ListingService) Delete(actor models.Identity, listingID uint) error {
	var listing models.Listing
	if err := ls.db.First(&listing, listingID).Error; err != nil {
		return fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
	}
	if listing.LandlordID != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("%w: not your listing", ErrForbiddenAction)
	}
	return ls.db.Delete(&listing).Error
}
