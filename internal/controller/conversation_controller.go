package controller

import (
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Topics(ctx *fiber.Ctx) error
	ShowByToken(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Link(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Abandon(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("", c.Start)
	h.Get("topics", c.Topics)
	h.Get("token/:token", c.ShowByToken)
	h.Get(":id", c.Show)
	h.Post(":id/link", c.Link)
	h.Post(":id/messages", c.AppendMessage)
	h.Get(":id/messages", c.History)
	h.Post(":id/complete", c.Complete)
	h.Post(":id/abandon", c.Abandon)
}

func (c *conversationController) Link(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.LinkConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Link(ctx.Context(), id, req.VisitorId)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success link conversation", res))
}

func (c *conversationController) Start(ctx *fiber.Ctx) error {
	var req dto.StartConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Start(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start conversation", res))
}

func (c *conversationController) Topics(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list topics", c.conversationService.AvailableTopics()))
}

func (c *conversationController) ShowByToken(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing token parameter")
	}

	res, err := c.conversationService.GetBySessionToken(ctx.Context(), token)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.Get(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) AppendMessage(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.AppendMessage(ctx.Context(), id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append message", res))
}

func (c *conversationController) History(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.History(ctx.Context(), id, ctx.QueryInt("limit", 0))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *conversationController) Complete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.CompleteConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Complete(ctx.Context(), id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete conversation", res))
}

func (c *conversationController) Abandon(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.Abandon(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success abandon conversation", res))
}
