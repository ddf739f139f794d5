package controller

import (
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVisitorController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
	Lookup(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Context(ctx *fiber.Ctx) error
	Sentiment(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
	ClassifyTraits(ctx *fiber.Ctx) error
	Memories(ctx *fiber.Ctx) error
	Ratings(ctx *fiber.Ctx) error
	Conversations(ctx *fiber.Ctx) error
}

type visitorController struct {
	identityService     service.IIdentityService
	personalityService  service.IPersonalityService
	memoryService       service.IMemoryService
	ratingService       service.IRatingService
	conversationService service.IConversationService
	chatService         service.IChatService
}

func NewVisitorController(
	identityService service.IIdentityService,
	personalityService service.IPersonalityService,
	memoryService service.IMemoryService,
	ratingService service.IRatingService,
	conversationService service.IConversationService,
	chatService service.IChatService,
) IVisitorController {
	return &visitorController{
		identityService:     identityService,
		personalityService:  personalityService,
		memoryService:       memoryService,
		ratingService:       ratingService,
		conversationService: conversationService,
		chatService:         chatService,
	}
}

func (c *visitorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/visitor/v1")
	h.Post("resolve", c.Resolve)
	h.Get("lookup", c.Lookup)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Get(":id/stats", c.Stats)
	h.Get(":id/context", c.Context)
	h.Get(":id/sentiment", c.Sentiment)
	h.Get(":id/suggestions", c.Suggestions)
	h.Post(":id/classify", c.ClassifyTraits)
	h.Get(":id/memories", c.Memories)
	h.Get(":id/ratings", c.Ratings)
	h.Get(":id/conversations", c.Conversations)
}

func (c *visitorController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveVisitorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.IpAddress == nil {
		ip := ctx.IP()
		req.IpAddress = &ip
	}
	if req.UserAgent == nil {
		ua := ctx.Get(fiber.HeaderUserAgent)
		req.UserAgent = &ua
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.identityService.Resolve(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve visitor", res))
}

func (c *visitorController) Lookup(ctx *fiber.Ctx) error {
	fingerprint := ctx.Query("fingerprint", "")
	email := ctx.Query("email", "")
	if fingerprint == "" && email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fingerprint or email is required")
	}

	res, err := c.identityService.Lookup(ctx.Context(), fingerprint, email)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lookup visitor", res))
}

func (c *visitorController) Stats(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.identityService.Stats(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show visitor stats", res))
}

func (c *visitorController) Context(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	block, err := c.chatService.ContextFor(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build visitor context", fiber.Map{
		"context": block,
	}))
}

func (c *visitorController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.identityService.GetVisitor(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show visitor", res))
}

func (c *visitorController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateVisitorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.identityService.UpdateVisitor(ctx.Context(), id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update visitor", res))
}

func (c *visitorController) Sentiment(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.personalityService.Sentiment(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze visitor sentiment", res))
}

func (c *visitorController) Suggestions(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.personalityService.Suggestions(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build visitor suggestions", res))
}

func (c *visitorController) ClassifyTraits(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	tags, err := c.personalityService.ClassifyTraits(ctx.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success classify visitor traits", tags))
}

func (c *visitorController) Memories(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	req := dto.QueryMemoriesRequest{
		MemoryType:    ctx.Query("type", ""),
		Category:      ctx.Query("category", ""),
		Subject:       ctx.Query("subject", ""),
		MinImportance: ctx.QueryInt("min_importance", 0),
		Limit:         ctx.QueryInt("limit", 0),
	}

	res, err := c.memoryService.Query(ctx.Context(), id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query visitor memories", res))
}

func (c *visitorController) Ratings(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.ratingService.ListForVisitor(ctx.Context(), id, ctx.QueryInt("limit", 0))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list visitor ratings", res))
}

func (c *visitorController) Conversations(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.ListForVisitor(ctx.Context(), id, ctx.QueryInt("limit", 0))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list visitor conversations", res))
}
