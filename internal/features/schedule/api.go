package schedule

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ScheduleApi struct {
	controller *ScheduleController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewScheduleApi(controller *ScheduleController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &ScheduleApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *ScheduleApi) Setup(app *fiber.App) {
	zamanlamalar := app.Group("/api/zamanlamalar", middleware.AuthMiddleware(h.config.SkipAuth))

	zamanlamalar.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "goruntuleme"), h.controller.ListSchedules)
	zamanlamalar.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "goruntuleme"), h.controller.GetSchedule)
	zamanlamalar.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "ekleme"), h.controller.CreateSchedule)
	zamanlamalar.Put("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "duzenleme"), h.controller.UpdateSchedule)
	zamanlamalar.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "silme"), h.controller.DeleteSchedule)
	zamanlamalar.Post("/:id/run", middleware.RequirePermission(h.checker, h.config.SkipAuth, "zamanlamalar", "ozel"), h.controller.RunSchedule)
}
