package controller

import (
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Turn(ctx *fiber.Ctx) error
	CacheStats(ctx *fiber.Ctx) error
	ClearCache(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	rateLimiter fiber.Handler
}

func NewChatController(chatService service.IChatService, rateLimiter fiber.Handler) IChatController {
	return &chatController{
		chatService: chatService,
		rateLimiter: rateLimiter,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("turn", c.rateLimiter, c.Turn)
	h.Get("cache/stats", c.CacheStats)
	h.Delete("cache", c.ClearCache)
}

func (c *chatController) Turn(ctx *fiber.Ctx) error {
	var req dto.ChatTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.ProcessTurn(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chat turn", res))
}

func (c *chatController) CacheStats(ctx *fiber.Ctx) error {
	res, err := c.chatService.CacheStats(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show cache stats", res))
}

func (c *chatController) ClearCache(ctx *fiber.Ctx) error {
	if err := c.chatService.ClearCache(ctx.Context()); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear answer cache", nil))
}
