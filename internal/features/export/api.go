package export

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewExportApi(controller *ExportController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &ExportApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *ExportApi) Setup(app *fiber.App) {
	export := app.Group("/api/export", middleware.AuthMiddleware(h.config.SkipAuth))

	export.Get("/uyeler", middleware.RequirePermission(h.checker, h.config.SkipAuth, "export", "goruntuleme"), h.controller.ExportMembersExcel)
	export.Get("/borclar", middleware.RequirePermission(h.checker, h.config.SkipAuth, "export", "goruntuleme"), h.controller.ExportDebtsExcel)
	export.Get("/odemeler", middleware.RequirePermission(h.checker, h.config.SkipAuth, "export", "goruntuleme"), h.controller.ExportPaymentsExcel)
	export.Post("/postgres", middleware.RequirePermission(h.checker, h.config.SkipAuth, "export", "ozel"), h.controller.SyncToPostgres)
}
