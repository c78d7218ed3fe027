package middleware

import (
	"context"

	"go-dernek/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminChecker reports whether a user is an administrator (admin email
// or any role flagged isAdmin). Implemented by the permission service.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AdminMiddleware restricts a route to administrators
func AdminMiddleware(checker AdminChecker, skipAuth bool) fiber.Handler {
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

		isAdmin, err := checker.IsAdmin(c.Context(), claims.UserID)
		if err != nil || !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: Admin role required",
			})
		}

		return c.Next()
	}
}
