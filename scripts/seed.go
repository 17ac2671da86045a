package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"roomease-server/models"
	"roomease-server/services"
	"roomease-server/storage"
)

// Seeds a development database: one admin, a handful of landlords and
// tenants, listings in every moderation state, plus some bookings and
// chats so every screen has data. Run with a throwaway database.
func main() {
	storage.InitializeDB()
	gofakeit.Seed(42)

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatalf("hashing seed password: %v", err)
	}

	admin := models.User{
		Name:     "Site Admin",
		Email:    "admin@roomease.dev",
		Password: string(password),
		Role:     models.RoleAdmin,
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("creating admin: %v", err)
	}

	var landlords []models.User
	for i := 0; i < 4; i++ {
		landlord := models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: string(password),
			Role:     models.RoleLandlord,
		}
		if err := storage.DB.Create(&landlord).Error; err != nil {
			log.Fatalf("creating landlord: %v", err)
		}
		landlords = append(landlords, landlord)
	}

	var tenants []models.User
	for i := 0; i < 8; i++ {
		tenant := models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: string(password),
			Role:     models.RoleTenant,
		}
		if err := storage.DB.Create(&tenant).Error; err != nil {
			log.Fatalf("creating tenant: %v", err)
		}
		tenants = append(tenants, tenant)
	}

	statuses := []models.ListingStatus{
		models.ListingApproved, models.ListingApproved, models.ListingApproved,
		models.ListingPending, models.ListingRejected,
	}
	var approved []models.Listing
	for i, landlord := range landlords {
		for j, status := range statuses {
			images, _ := json.Marshal([]string{gofakeit.ImageURL(640, 480)})
			listing := models.Listing{
				LandlordID:  landlord.ID,
				Title:       fmt.Sprintf("%s in %s", gofakeit.AdjectiveDescriptive(), gofakeit.City()),
				Description: gofakeit.Paragraph(1, 3, 12, " "),
				Location:    gofakeit.City(),
				Price:       float32(gofakeit.Number(600, 3500)),
				Bedrooms:    gofakeit.Number(1, 4),
				Bathrooms:   float32(gofakeit.Number(1, 3)),
				Images:      datatypes.JSON(images),
				Status:      status,
			}
			if status == models.ListingRejected {
				listing.RejectionReason = "photos do not match the address"
			}
			if err := storage.DB.Create(&listing).Error; err != nil {
				log.Fatalf("creating listing %d/%d: %v", i, j, err)
			}
			if status == models.ListingApproved {
				approved = append(approved, listing)
			}
		}
	}

	bookings := services.NewBookingService(storage.DB, services.NewNotificationService(storage.DB, nil))
	for i, tenant := range tenants {
		listing := approved[i%len(approved)]
		actor := models.Identity{ID: tenant.ID, Role: tenant.Role}
		if _, err := bookings.Create(actor, listing.ID, gofakeit.Sentence(8)); err != nil {
			log.Printf("seed booking skipped: %v", err)
		}
	}

	chats := services.NewChatService(storage.DB, services.NewNotificationService(storage.DB, nil))
	for i := 0; i < 3 && i < len(tenants); i++ {
		listing := approved[i%len(approved)]
		tenant := models.Identity{ID: tenants[i].ID, Role: tenants[i].Role}
		chat, err := chats.OpenOrCreate(tenant, listing.LandlordID, listing.ID)
		if err != nil {
			log.Printf("seed chat skipped: %v", err)
			continue
		}
		if _, err := chats.SendMessage(tenant, chat.ID, "Hi, is this place still available?"); err != nil {
			log.Printf("seed message skipped: %v", err)
		}
	}

	fmt.Printf("seeded %d users, %d listings (%d approved)\n",
		1+len(landlords)+len(tenants), len(landlords)*len(statuses), len(approved))
	fmt.Println("every account uses password123")
}
