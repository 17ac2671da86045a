package routes

import (
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/reports
func SubmitReport(ctx iris.Context) {
	var input services.SubmitReportInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	reports := services.NewReportService(storage.DB, newNotifier())
	report, err := reports.Submit(actor, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(report)
}

// GET /api/reports/my-reports
func MyReports(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	reports, err := services.NewReportService(storage.DB, newNotifier()).ListMine(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reports)
}

// GET /api/reports/:id
func GetReport(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	report, serr := services.NewReportService(storage.DB, newNotifier()).Get(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(report)
}
