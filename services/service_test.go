package services

import (
	"testing"

	"roomease-server/models"
	"roomease-server/storage"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.OpenTestDB()
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.Identity {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@test.local",
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user %s: %v", name, err)
	}
	return models.Identity{ID: user.ID, Role: role}
}

func createListing(t *testing.T, db *gorm.DB, landlordID uint, status models.ListingStatus) models.Listing {
	t.Helper()
	listing := models.Listing{
		LandlordID: landlordID,
		Title:      "Bright one-bed",
		Location:   "Leeds",
		Price:      950,
		Bedrooms:   1,
		Bathrooms:  1,
		Status:     status,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("creating listing: %v", err)
	}
	return listing
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&notifications).Error; err != nil {
		t.Fatalf("loading notifications: %v", err)
	}
	return notifications
}
