package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.Get()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	var update services.SettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if update.Empty() {
		return apiError(c, fiber.StatusBadRequest, "no settings to update")
	}

	settings, err := handler.settingsService.Update(update)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) GetSuggestedCycleLength(c *fiber.Ctx) error {
	suggestion, err := handler.cycleService.SuggestedCycleLength()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(suggestionResponse{
		Current:    suggestion.Current,
		Suggested:  suggestion.Suggested,
		HasHistory: suggestion.HasHistory,
		Changed:    suggestion.Changed(),
	})
}

func (handler *Handler) ApplySuggestedCycleLength(c *fiber.Ctx) error {
	settings, err := handler.cycleService.ApplySuggestedCycleLength()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(settings)
}
