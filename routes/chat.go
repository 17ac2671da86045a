package routes

import (
	"roomease-server/services"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

type startChatInput struct {
	OtherUserID uint `json:"otherUserId" validate:"required"`
	ListingID   uint `json:"listingId"`
}

// POST /api/chat
// Returns the existing chat for (pair, listing) when there is one; both
// sides clicking "chat" at once get the same chat back.
func StartChat(ctx iris.Context) {
	var input startChatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	chats := services.NewChatService(storage.DB, newNotifier())
	chat, err := chats.OpenOrCreate(actor, input.OtherUserID, input.ListingID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(chat)
}

// GET /api/chat
func ListChats(ctx iris.Context) {
	actor := utils.IdentityFromCtx(ctx)
	chats, err := services.NewChatService(storage.DB, newNotifier()).List(actor)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(chats)
}

// GET /api/chat/:id
func GetChat(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	chat, serr := services.NewChatService(storage.DB, newNotifier()).Get(actor, id)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(chat)
}

type sendMessageInput struct {
	Content string `json:"content" validate:"required,lt=5000"`
}

// POST /api/chat/:id/messages
func SendChatMessage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var input sendMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	actor := utils.IdentityFromCtx(ctx)

	message, serr := services.NewChatService(storage.DB, newNotifier()).SendMessage(actor, id, input.Content)
	if serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

// DELETE /api/chat/:id
func DeleteChat(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	actor := utils.IdentityFromCtx(ctx)
	if serr := services.NewChatService(storage.DB, newNotifier()).Delete(actor, id); serr != nil {
		handleServiceError(ctx, serr)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
