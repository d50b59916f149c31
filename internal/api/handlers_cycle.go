package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	summary, err := handler.cycleService.Overview(today)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(newSummaryResponse(summary))
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	cycles, err := intQuery(c, "cycles", handler.defaultCycles)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cycles")
	}

	predictions, err := handler.cycleService.Predictions(today, cycles)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"predictions": newPredictionResponses(predictions)})
}

func (handler *Handler) CheckDay(c *fiber.Ctx) error {
	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	date, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	check, err := handler.cycleService.Check(date, today)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(dayCheckResponse{
		Date:            services.FormatDay(check.Date),
		HasHistory:      check.HasHistory,
		InFertileWindow: check.InFertileWindow,
		IsOvulationDay:  check.IsOvulationDay,
	})
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}

	month := today
	if raw := c.Query("month"); raw != "" {
		month, err = services.ParseMonth(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
	}

	calendar, err := handler.calendarService.Month(month, today)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(newCalendarResponse(calendar))
}

func (handler *Handler) GetReminders(c *fiber.Ctx) error {
	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	reminders, err := handler.reminderService.Upcoming(today)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"reminders": newReminderResponses(reminders)})
}
