package routes

import (
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

type createBookingInput struct {
	ListingID uint   `json:"listingId" validate:"required"`
	Message   string `json:"message" validate:"lt=1000"`
}

// POST /api/bookings
func CreateBooking(ctx iris.Context) {
	var input createBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	bookings := services.NewBookingService(storage.DB, newNotifier())
	request, err := bookings.Create(actor, input.ListingID, input.Message)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(request)
}

// GET /api/bookings/my-requests
func MyBookingRequests(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	requests, err := services.NewBookingService(storage.DB, newNotifier()).ListForTenant(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(requests)
}

// GET /api/bookings/my-listings-requests
func MyListingsBookingRequests(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	requests, err := services.NewBookingService(storage.DB, newNotifier()).ListForLandlord(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(requests)
}

// GET /api/bookings/listing/:listingID
func ListingBookingRequests(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("listingID")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	requests, serr := services.NewBookingService(storage.DB, newNotifier()).ListForListing(actor, listingID)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(requests)
}

// PUT /api/bookings/:id/approve
func ApproveBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	request, serr := services.NewBookingService(storage.DB, newNotifier()).Approve(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(request)
}

// PUT /api/bookings/:id/reject
func RejectBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	request, serr := services.NewBookingService(storage.DB, newNotifier()).Reject(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(request)
}

// GET /api/bookings/check/:listingID
func CheckBookingStatus(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("listingID")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	hasRequest, status, serr := services.NewBookingService(storage.DB, newNotifier()).StatusForListing(actor, listingID)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	resp := iris.Map{"hasRequest": hasRequest}
	if hasRequest {
		resp["status"] = status
	}
	ctx.JSON(resp)
}
