package permission

import (
	"go-dernek/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	Service PermissionService
}

func NewPermissionController(service PermissionService) *PermissionController {
	return &PermissionController{Service: service}
}

// CheckPermission godoc
// @Summary      Check a permission code
// @Description  Answers whether the authenticated user holds a permission code
// @Tags         permissions
// @Produce      json
// @Param        kod query string true "Permission code, e.g. borclar_ekleme"
// @Success      200 {object} map[string]interface{}
// @Router       /permissions/check [get]
func (ctrl *PermissionController) CheckPermission(c *fiber.Ctx) error {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	kod := c.Query("kod")
	allowed, err := ctrl.Service.HasPermission(c.Context(), claims.UserID, kod)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permission",
		})
	}

	return c.JSON(fiber.Map{
		"kod":     kod,
		"allowed": allowed,
	})
}

// ListActions godoc
// @Summary      List the action vocabulary
// @Tags         permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /permissions/actions [get]
func (ctrl *PermissionController) ListActions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"actions": Actions,
	})
}
