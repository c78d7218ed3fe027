package middleware

import (
	"context"

	"go-dernek/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// PermissionChecker answers module/action access questions for a user.
// Implemented by the permission service; declared here to avoid a
// middleware -> feature import edge.
type PermissionChecker interface {
	HasModulePermission(ctx context.Context, userID string, modul string, islem string) (bool, error)
}

// RequirePermission guards a route with a module/action pair, e.g.
// RequirePermission(checker, "borclar", "ekleme"). Higher action levels
// held by the user imply lower ones for the same module.
func RequirePermission(checker PermissionChecker, skipAuth bool, modul string, islem string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			return c.Next()
		}

		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		allowed, err := checker.HasModulePermission(c.Context(), claims.UserID, modul, islem)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
