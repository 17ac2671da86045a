package main

import (
	"log"
	"os"
	"time"

	"roomease-server/routes"
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the roomease web client
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifierMiddleware := utils.NewAccessTokenVerifier()

	listings := app.Party("/api/listings")
	{
		listings.Use(accessTokenVerifierMiddleware)
		listings.Post("/", routes.CreateListing)
		listings.Get("/", routes.ListApprovedListings)
		listings.Get("/landlord/my-listings", routes.MyListings)
		listings.Get("/{id}", routes.GetListing)
		listings.Put("/{id}", routes.UpdateListing)
		listings.Delete("/{id}", routes.DeleteListing)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Use(accessTokenVerifierMiddleware)
		bookings.Post("/", routes.CreateBooking)
		bookings.Get("/my-requests", routes.MyBookingRequests)
		bookings.Get("/my-listings-requests", routes.MyListingsBookingRequests)
		bookings.Get("/listing/{listingID}", routes.ListingBookingRequests)
		bookings.Get("/check/{listingID}", routes.CheckBookingStatus)
		bookings.Put("/{id}/approve", routes.ApproveBooking)
		bookings.Put("/{id}/reject", routes.RejectBooking)
	}

	chat := app.Party("/api/chat")
	{
		chat.Use(accessTokenVerifierMiddleware)
		chat.Post("/", routes.StartChat)
		chat.Get("/", routes.ListChats)
		chat.Get("/{id}", routes.GetChat)
		chat.Post("/{id}/messages", routes.SendChatMessage)
		chat.Delete("/{id}", routes.DeleteChat)
	}

	notifications := app.Party("/api/notifications")
	{
		notifications.Use(accessTokenVerifierMiddleware)
		notifications.Get("/", routes.ListNotifications)
		notifications.Get("/unread/count", routes.UnreadNotificationCount)
		notifications.Put("/mark/all-read", routes.MarkAllNotificationsRead)
		notifications.Put("/{id}/read", routes.MarkNotificationRead)
		notifications.Delete("/{id}", routes.DeleteNotification)
	}

	reports := app.Party("/api/reports")
	{
		reports.Use(accessTokenVerifierMiddleware)
		reports.Post("/", routes.SubmitReport)
		reports.Get("/my-reports", routes.MyReports)
		reports.Get("/{id}", routes.GetReport)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Use(accessTokenVerifierMiddleware)
		reviews.Post("/", routes.CreateReview)
		reviews.Get("/", routes.MyReviews)
		reviews.Get("/listing/{listingID}", routes.ListingReviews)
		reviews.Post("/{id}/helpful", routes.MarkReviewHelpful)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/listings", routes.AdminListListings)
		admin.Get("/listings/{id}", routes.AdminGetListing)
		admin.Put("/listings/{id}/approve", routes.AdminApproveListing)
		admin.Put("/listings/{id}/reject", routes.AdminRejectListing)
		admin.Get("/reports", routes.AdminListReports)
		admin.Get("/reports/{id}", routes.AdminGetReport)
		admin.Put("/reports/{id}/update", routes.AdminUpdateReport)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
	}

	startMaintenanceJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}

// startMaintenanceJobs runs retention sweeps off the request path.
func startMaintenanceJobs() {
	c := cron.New()
	notifier := services.NewNotificationService(storage.DB, storage.Redis)
	_, err := c.AddFunc("@daily", func() {
		if _, err := notifier.PurgeOlderThan(90 * 24 * time.Hour); err != nil {
			log.Printf("maintenance: notification purge failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("maintenance: could not schedule purge job: %v", err)
		return
	}
	c.Start()
}
