package tariff

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TariffApi struct {
	controller *TariffController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewTariffApi(controller *TariffController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &TariffApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *TariffApi) Setup(app *fiber.App) {
	tarifeler := app.Group("/api/tarifeler", middleware.AuthMiddleware(h.config.SkipAuth))

	tarifeler.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "goruntuleme"), h.controller.ListTariffs)
	tarifeler.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "goruntuleme"), h.controller.GetTariff)
	tarifeler.Get("/:id/evaluate", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "goruntuleme"), h.controller.EvaluateTariff)
	tarifeler.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "ekleme"), h.controller.CreateTariff)
	tarifeler.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "duzenleme"), h.controller.UpdateTariff)
	tarifeler.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "tarifeler", "silme"), h.controller.DeleteTariff)
}
