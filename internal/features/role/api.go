package role

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	config     *config.Config
	admin      middleware.AdminChecker
}

func NewRoleApi(controller *RoleController, config *config.Config, admin middleware.AdminChecker) common_api.Route {
	return &RoleApi{
		controller: controller,
		config:     config,
		admin:      admin,
	}
}

func (h *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/roles",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.AdminMiddleware(h.admin, h.config.SkipAuth))

	roles.Get("/", h.controller.ListRoles)
	roles.Get("/:id", h.controller.GetRole)
	roles.Post("/", h.controller.CreateRole)
	roles.Put("/:id", h.controller.UpdateRole)
	roles.Delete("/:id", h.controller.DeleteRole)
}
