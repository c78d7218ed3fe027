package debt

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DebtApi struct {
	controller *DebtController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewDebtApi(controller *DebtController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &DebtApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *DebtApi) Setup(app *fiber.App) {
	borclar := app.Group("/api/borclar", middleware.AuthMiddleware(h.config.SkipAuth))

	borclar.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "goruntuleme"), h.controller.ListDebts)
	borclar.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "goruntuleme"), h.controller.GetDebt)
	borclar.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "ekleme"), h.controller.CreateDebt)
	borclar.Post("/issue", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "ekleme"), h.controller.IssueDebts)
	borclar.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "duzenleme"), h.controller.UpdateDebt)
	borclar.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "borclar", "silme"), h.controller.DeleteDebt)
}
