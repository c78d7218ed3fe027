package user

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
	admin      middleware.AdminChecker
}

func NewUserApi(controller *UserController, config *config.Config, admin middleware.AdminChecker) common_api.Route {
	return &UserApi{
		controller: controller,
		config:     config,
		admin:      admin,
	}
}

// User management is admin territory end to end.
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.AdminMiddleware(h.admin, h.config.SkipAuth))

	users.Get("/", h.controller.ListUsers)
	users.Get("/:id", h.controller.GetUser)
	users.Post("/", h.controller.CreateUser)
	users.Put("/:id", h.controller.UpdateUser)
	users.Put("/:id/roles", h.controller.SetUserRoles)
	users.Put("/:id/permissions", h.controller.SetUserPermissions)
	users.Put("/:id/password", h.controller.ChangeUserPassword)
	users.Delete("/:id", h.controller.DeleteUser)
}
