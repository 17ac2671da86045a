package routes

import (
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/reviews
func CreateReview(ctx iris.Context) {
	var input services.CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	reviews := services.NewReviewService(storage.DB, newNotifier())
	review, err := reviews.Create(actor, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

// GET /api/reviews
func MyReviews(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	reviews, err := services.NewReviewService(storage.DB, newNotifier()).ListMine(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reviews)
}

// GET /api/reviews/listing/:listingID
func ListingReviews(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("listingID")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}
	reviews, serr := services.NewReviewService(storage.DB, newNotifier()).ListForListing(listingID)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(reviews)
}

// POST /api/reviews/:id/helpful
func MarkReviewHelpful(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	review, serr := services.NewReviewService(storage.DB, newNotifier()).MarkHelpful(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(review)
}
