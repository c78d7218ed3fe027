package member

import (
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberApi struct {
	controller *MemberController
	config     *config.Config
	checker    middleware.PermissionChecker
}

func NewMemberApi(controller *MemberController, config *config.Config, checker middleware.PermissionChecker) common_api.Route {
	return &MemberApi{
		controller: controller,
		config:     config,
		checker:    checker,
	}
}

func (h *MemberApi) Setup(app *fiber.App) {
	uyeler := app.Group("/api/uyeler", middleware.AuthMiddleware(h.config.SkipAuth))

	uyeler.Get("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "uyeler", "goruntuleme"), h.controller.ListMembers)
	uyeler.Get("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "uyeler", "goruntuleme"), h.controller.GetMember)
	uyeler.Post("/", middleware.RequirePermission(h.checker, h.config.SkipAuth, "uyeler", "ekleme"), h.controller.CreateMember)
	uyeler.Put("/:id/status", middleware.RequirePermission(h.checker, h.config.SkipAuth, "uyeler", "duzenleme"), h.controller.UpdateMemberStatus)
	uyeler.Delete("/:id", middleware.RequirePermission(h.checker, h.config.SkipAuth, "uyeler", "silme"), h.controller.DeleteMember)
}
