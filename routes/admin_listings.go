package routes

import (
	"roomease-server/models"
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/listings?status=pending
func AdminListListings(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	status := models.ListingStatus(ctx.URLParamDefault("status", "pending"))

	listings, err := services.NewListingService(storage.DB).ListByStatus(actor, status)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(listings)
}

// GET /api/admin/listings/:id
func AdminGetListing(ctx iris.Context) {
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

// PUT /api/admin/listings/:id/approve
func AdminApproveListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	moderation := services.NewModerationService(storage.DB, newNotifier())
	listing, serr := moderation.Approve(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	utils.Audit(ctx, "listing.approve", "listing", listing.ID, nil, listing)
	ctx.JSON(listing)
}

type rejectListingInput struct {
	Reason string `json:"reason" validate:"required,lt=500"`
}

// PUT /api/admin/listings/:id/reject
func AdminRejectListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var input rejectListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	moderation := services.NewModerationService(storage.DB, newNotifier())
	listing, serr := moderation.Reject(actor, id, input.Reason)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	utils.Audit(ctx, "listing.reject", "listing", listing.ID, nil, listing)
	ctx.JSON(listing)
}
