package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthStatus(c *fiber.Ctx) error {
	configured, err := handler.authService.PasswordConfigured()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"password_configured": configured})
}

// LoginRateLimit throttles password attempts per client address.
func (handler *Handler) LoginRateLimit(c *fiber.Ctx) error {
	allowed, wait := handler.loginLimiter.allow(requestLimiterKey(c), handler.now())
	if !allowed {
		seconds := int(wait.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}
	return c.Next()
}

func (handler *Handler) Setup(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.Setup(input.Password); err != nil {
		return handler.respondError(c, err)
	}
	handler.requestLog(c).Info("password configured")
	return handler.issueToken(c, input.Password, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Password) == "" {
		return apiError(c, fiber.StatusBadRequest, "password is required")
	}
	return handler.issueToken(c, input.Password, fiber.StatusOK)
}

func (handler *Handler) issueToken(c *fiber.Ctx, password string, status int) error {
	result, err := handler.authService.Login(password)
	if err != nil {
		return handler.respondError(c, err)
	}
	handler.loginLimiter.reset(requestLimiterKey(c))
	handler.setAuthCookie(c, result.Token, result.ExpiresAt)

	return c.Status(status).JSON(loginResponse{
		Token:              result.Token,
		ExpiresAt:          result.ExpiresAt,
		MustChangePassword: result.MustChangePassword,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword replaces the password and returns a fresh token. Tokens
// issued for the old password stop working.
func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return handler.respondError(c, err)
	}
	handler.requestLog(c).Info("password changed")
	return handler.issueToken(c, input.NewPassword, fiber.StatusOK)
}
