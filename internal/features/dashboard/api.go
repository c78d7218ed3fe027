package dashboard

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewDashboardApi(controller *DashboardController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &DashboardApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	dashboard := app.Group("/api/dashboard", middleware.AuthMiddleware(h.config.SkipAuth))

	dashboard.Get("/summary", middleware.RequirePermission(h.checker, h.config.SkipAuth, "dashboard", "goruntuleme"), h.controller.GetSummary)
	dashboard.Get("/collections", middleware.RequirePermission(h.checker, h.config.SkipAuth, "dashboard", "goruntuleme"), h.controller.GetCollectedByMonth)
}
