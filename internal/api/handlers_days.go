package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, err := optionalDayQuery(c, "from")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := optionalDayQuery(c, "to")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	entries, err := handler.entryService.List(from, to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"days": newEntryResponses(entries)})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	entry, found, err := handler.entryService.Get(c.Params("date"))
	if err != nil {
		return handler.respondError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "day not found")
	}
	return c.JSON(newEntryResponse(entry))
}

// UpsertDay checks the future-date guard against the server clock; the
// ?today= override only applies to read endpoints.
func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	today := services.DateAtLocation(handler.now(), handler.location)

	var payload dayPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.entryService.Upsert(services.EntryInput{
		Date:      c.Params("date"),
		IsPeriod:  payload.IsPeriod,
		FlowLevel: payload.FlowLevel,
		Mood:      payload.Mood,
		Cramps:    payload.Cramps,
		Notes:     payload.Notes,
	}, today)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(newEntryResponse(entry))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	deleted, err := handler.entryService.Delete(c.Params("date"))
	if err != nil {
		return handler.respondError(c, err)
	}
	if !deleted {
		return apiError(c, fiber.StatusNotFound, "day not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
