package payment

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PaymentApi struct {
	controller *PaymentController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewPaymentApi(controller *PaymentController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &PaymentApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *PaymentApi) Setup(app *fiber.App) {
	odemeler := app.Group("/api/odemeler", middleware.AuthMiddleware(h.config.SkipAuth))

	odemeler.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "odemeler", "goruntuleme"), h.controller.ListPayments)
	odemeler.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "odemeler", "goruntuleme"), h.controller.GetPayment)
	odemeler.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "odemeler", "ekleme"), h.controller.CreatePayment)
	odemeler.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "odemeler", "duzenleme"), h.controller.UpdatePayment)
	odemeler.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "odemeler", "silme"), h.controller.DeletePayment)
}
