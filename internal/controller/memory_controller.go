package controller

import (
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoryController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	PruneExpired(ctx *fiber.Ctx) error
}

type memoryController struct {
	memoryService service.IMemoryService
}

func NewMemoryController(memoryService service.IMemoryService) IMemoryController {
	return &memoryController{
		memoryService: memoryService,
	}
}

func (c *memoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memory/v1")
	h.Post("", c.Save)
	h.Delete("expired", c.PruneExpired)
}

func (c *memoryController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveMemoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoryService.Save(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save memory", res))
}

func (c *memoryController) PruneExpired(ctx *fiber.Ctx) error {
	pruned, err := c.memoryService.PruneExpired(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success prune expired memories", fiber.Map{
		"pruned": pruned,
	}))
}
