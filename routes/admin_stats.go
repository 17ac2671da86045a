package routes

import (
	"time"

	"roomease-server/models"
	"roomease-server/storage"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var pendingListings int64
	storage.DB.Model(&models.Listing{}).Where("status = ?", models.ListingPending).Count(&pendingListings)
	var pendingReports int64
	storage.DB.Model(&models.Report{}).Where("status = ?", models.ReportPending).Count(&pendingReports)
	var pendingBookings int64
	storage.DB.Model(&models.BookingRequest{}).Where("status = ?", models.BookingPending).Count(&pendingBookings)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newBookings7, newBookings30 int64
	storage.DB.Model(&models.BookingRequest{}).Where("created_at >= ?", since7).Count(&newBookings7)
	storage.DB.Model(&models.BookingRequest{}).Where("created_at >= ?", since30).Count(&newBookings30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"pending_listings": pendingListings,
			"pending_reports":  pendingReports,
			"pending_bookings": pendingBookings,
			"new_bookings_7d":  newBookings7,
			"new_bookings_30d": newBookings30,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /api/admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
