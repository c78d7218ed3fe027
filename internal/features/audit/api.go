package audit

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
	checker    middleware.AdminChecker
}

func NewAuditApi(controller *AuditController, config *config.Config, checker middleware.AdminChecker) common_api.Route {
	return &AuditApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.AdminMiddleware(h.checker, h.config.SkipAuth))

	audit.Get("/", h.controller.ListLogs)
}
