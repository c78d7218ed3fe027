package cashregister

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RegisterApi struct {
	controller *RegisterController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewRegisterApi(controller *RegisterController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &RegisterApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *RegisterApi) Setup(app *fiber.App) {
	kasalar := app.Group("/api/kasalar", middleware.AuthMiddleware(h.config.SkipAuth))

	kasalar.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "goruntuleme"), h.controller.ListRegisters)
	kasalar.Get("/balances", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "goruntuleme"), h.controller.ListRegisterBalances)
	kasalar.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "goruntuleme"), h.controller.GetRegister)
	kasalar.Get("/:id/balance", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "goruntuleme"), h.controller.GetRegisterBalance)
	kasalar.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "ekleme"), h.controller.CreateRegister)
	kasalar.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "duzenleme"), h.controller.UpdateRegister)
	kasalar.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "kasalar", "silme"), h.controller.DeleteRegister)
}
