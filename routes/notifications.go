package routes

import (
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/notifications
func ListNotifications(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	notifications, err := newNotifier().List(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(notifications)
}

// GET /api/notifications/unread/count
// Polled every 30s by the badge; served from the counter projection.
func UnreadNotificationCount(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	count, err := newNotifier().UnreadCount(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"unreadCount": count})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	notification, serr := newNotifier().MarkRead(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(notification)
}

// PUT /api/notifications/mark/all-read
func MarkAllNotificationsRead(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	if err := newNotifier().MarkAllRead(actor); err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

// DELETE /api/notifications/:id
func DeleteNotification(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	if serr := newNotifier().Delete(actor, id); serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
