package permission

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	config     *config.Config
}

func NewPermissionApi(controller *PermissionController, config *config.Config) common_api.Route {
	return &PermissionApi{
		controller: controller,
		config:     config,
	}
}

func (h *PermissionApi) Setup(app *fiber.App) {
	perms := app.Group("/api/permissions", middleware.AuthMiddleware(h.config.SkipAuth))

	perms.Get("/check", h.controller.CheckPermission)
	perms.Get("/actions", h.controller.ListActions)
}
