package subscriber

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubscriberApi struct {
	controller *SubscriberController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewSubscriberApi(controller *SubscriberController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &SubscriberApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *SubscriberApi) Setup(app *fiber.App) {
	aboneler := app.Group("/api/aboneler", middleware.AuthMiddleware(h.config.SkipAuth))

	aboneler.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "aboneler", "goruntuleme"), h.controller.ListSubscribers)
	aboneler.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "aboneler", "goruntuleme"), h.controller.GetSubscriber)
	aboneler.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "aboneler", "ekleme"), h.controller.CreateSubscriber)
	aboneler.Put("/:id/close", middleware.RequirePermission(h.checker, h.config.SkipAuth, "aboneler", "duzenleme"), h.controller.CloseSubscription)
	aboneler.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "aboneler", "silme"), h.controller.DeleteSubscriber)
}
