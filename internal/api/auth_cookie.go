package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const authCookieName = "periodcalendar_auth"

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
