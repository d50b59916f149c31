package api

import "github.com/gofiber/fiber/v2"

const passwordChangePath = "/api/auth/password"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/status", handler.AuthStatus)
	auth.Post("/setup", handler.LoginRateLimit, handler.Setup)
	auth.Post("/login", handler.LoginRateLimit, handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Put("/password", handler.AuthRequired, handler.ChangePassword)

	api.Get("/summary", handler.AuthRequired, handler.GetSummary)
	api.Get("/predictions", handler.AuthRequired, handler.GetPredictions)
	api.Get("/check/:date", handler.AuthRequired, handler.CheckDay)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)
	api.Get("/reminders", handler.AuthRequired, handler.GetReminders)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)
	settings.Get("/suggested-cycle-length", handler.GetSuggestedCycleLength)
	settings.Post("/apply-suggested-cycle-length", handler.ApplySuggestedCycleLength)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
