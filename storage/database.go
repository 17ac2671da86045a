package storage

import (
	"log"
	"os"

	"roomease-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services rely on for the
	// create-or-conflict paths (bookings, chats, reviews).
	cfg := &gorm.Config{TranslateError: true}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	var db *gorm.DB
	var dbError error
	if dsn == "" {
		// Local development fallback.
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "roomease.db"
		}
		log.Println("DB_CONNECTION_STRING not set, using sqlite at", path)
		db, dbError = gorm.Open(sqlite.Open(path), cfg)
	} else {
		db, dbError = gorm.Open(postgres.Open(dsn), cfg)
	}
	if dbError != nil {
		log.Panic("error connecting to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.BookingRequest{},
		&models.Chat{}, // create table containing many side first
		&models.Message{},
		&models.Notification{},
		&models.Report{},
		&models.Review{},
		&models.AuditLog{},
	)

	// AutoMigrate cannot express a partial index. At most one active
	// (pending or approved) booking request may exist per tenant+listing;
	// rejected rows must not block resubmission, so they are excluded.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active
		ON booking_requests (tenant_id, listing_id)
		WHERE status IN ('pending', 'approved') AND deleted_at IS NULL;`)
}

// InitializeDB connects and migrates. Call once at process start.
func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}

// OpenTestDB returns an isolated in-memory database with the full schema,
// for use from _test files.
func OpenTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	performMigrations(db)
	return db, nil
}
