package person

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PersonApi struct {
	controller *PersonController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewPersonApi(controller *PersonController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &PersonApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *PersonApi) Setup(app *fiber.App) {
	kisiler := app.Group("/api/kisiler", middleware.AuthMiddleware(h.config.SkipAuth))

	kisiler.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kisiler", "goruntuleme"), h.controller.ListPeople)
	kisiler.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kisiler", "goruntuleme"), h.controller.GetPerson)
	kisiler.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kisiler", "ekleme"), h.controller.CreatePerson)
	kisiler.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kisiler", "duzenleme"), h.controller.UpdatePerson)
	kisiler.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kisiler", "silme"), h.controller.DeletePerson)
}
