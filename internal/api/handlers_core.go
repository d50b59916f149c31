package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.repositories.Database().DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
