package routes

import (
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/listings
func CreateListing(ctx iris.Context) {
	var input services.SubmitListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	moderation := services.NewModerationService(storage.DB, newNotifier())
	listing, err := moderation.Submit(actor, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(listing)
}

// GET /api/listings?location=&minPrice=&maxPrice=&bedrooms=&search=
func ListApprovedListings(ctx iris.Context) {
	filters := services.ListingFilters{
		Location: ctx.URLParamDefault("location", ""),
		MinPrice: float32(ctx.URLParamFloat64Default("minPrice", 0)),
		MaxPrice: float32(ctx.URLParamFloat64Default("maxPrice", 0)),
		Bedrooms: ctx.URLParamIntDefault("bedrooms", 0),
		Search:   ctx.URLParamDefault("search", ""),
	}
	listings, err := services.NewListingService(storage.DB).ListApproved(filters)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(listings)
}

// GET /api/listings/:id
func GetListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	listing, serr := services.NewListingService(storage.DB).Get(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(listing)
}

// GET /api/listings/landlord/my-listings
func MyListings(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	listings, err := services.NewListingService(storage.DB).ListMine(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(listings)
}

// PUT /api/listings/:id
func UpdateListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var input services.UpdateListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	listing, serr := services.NewListingService(storage.DB).Update(actor, id, input)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(listing)
}

// DELETE /api/listings/:id
func DeleteListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	if serr := services.NewListingService(storage.DB).Delete(actor, id); serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

// newNotifier wires the fan-out dispatcher over the process-wide stores.
func newNotifier() *services.NotificationService {
	return services.NewNotificationService(storage.DB, storage.Redis)
}
