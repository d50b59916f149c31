package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired accepts requests carrying a valid bearer token. While a
// temporary password is active only the password change route stays open.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	account, err := handler.authService.ParseToken(requestToken(c))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if account.MustChangePassword && c.Path() != passwordChangePath {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}
