package organization

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrganizationApi struct {
	controller *OrganizationController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewOrganizationApi(controller *OrganizationController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &OrganizationApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *OrganizationApi) Setup(app *fiber.App) {
	orgs := app.Group("/api/organizasyonlar", middleware.AuthMiddleware(h.config.SkipAuth))

	orgs.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "organizasyonlar", "goruntuleme"), h.controller.ListOrganizations)
	orgs.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "organizasyonlar", "goruntuleme"), h.controller.GetOrganization)
	orgs.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "organizasyonlar", "ekleme"), h.controller.CreateOrganization)
	orgs.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "organizasyonlar", "duzenleme"), h.controller.UpdateOrganization)
	orgs.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "organizasyonlar", "silme"), h.controller.DeleteOrganization)
}
