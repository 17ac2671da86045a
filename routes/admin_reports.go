package routes

import (
	"roomease-server/models"
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/reports?status=pending
func AdminListReports(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	status := models.ReportStatus(ctx.URLParamDefault("status", ""))

	reports, err := services.NewReportService(storage.DB, newNotifier()).ListByStatus(actor, status)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(reports)
}

// GET /api/admin/reports/:id
func AdminGetReport(ctx iris.Context) {
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

type updateReportInput struct {
	Status     string `json:"status" validate:"required,oneof=investigating resolved dismissed"`
	Resolution string `json:"resolution" validate:"lt=1000"`
}

// PUT /api/admin/reports/:id/update
func AdminUpdateReport(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var input updateReportInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	reports := services.NewReportService(storage.DB, newNotifier())
	report, serr := reports.UpdateStatus(actor, id, models.ReportStatus(input.Status), input.Resolution)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	utils.Audit(ctx, "report.status_update", "report", report.ID, nil, report)
	ctx.JSON(report)
}
