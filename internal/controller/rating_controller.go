package controller

import (
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRatingController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	TopPlaces(ctx *fiber.Ctx) error
}

type ratingController struct {
	ratingService service.IRatingService
	rateLimiter   fiber.Handler
}

func NewRatingController(ratingService service.IRatingService, rateLimiter fiber.Handler) IRatingController {
	return &ratingController{
		ratingService: ratingService,
		rateLimiter:   rateLimiter,
	}
}

func (c *ratingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rating/v1")
	h.Post("", c.rateLimiter, c.Save)
	h.Get("top-places", c.TopPlaces)
}

func (c *ratingController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveRatingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ratingService.Save(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save rating", res))
}

func (c *ratingController) TopPlaces(ctx *fiber.Ctx) error {
	res, err := c.ratingService.TopPlaces(ctx.Context(), ctx.Query("category", ""), ctx.QueryInt("limit", 0))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list top places", res))
}
