package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondError maps service and prediction errors onto HTTP statuses.
// Unexpected errors are logged and hidden from the client.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, prediction.ErrInvalidArgument),
		errors.Is(err, services.ErrInvalidEntryDate),
		errors.Is(err, services.ErrInvalidEntry),
		errors.Is(err, services.ErrFutureEntryDate),
		errors.Is(err, services.ErrInvalidSettings),
		errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrPasswordAlreadyConfigured),
		errors.Is(err, services.ErrPasswordNotConfigured):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		handler.requestLog(c).WithError(err).Error("request failed")
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// resolveToday reads the optional ?today=YYYY-MM-DD parameter, defaulting to
// the current date in the configured location.
func (handler *Handler) resolveToday(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" {
		return services.DateAtLocation(handler.now(), handler.location), nil
	}
	return services.ParseDay(raw)
}

// optionalDayQuery parses an optional date query parameter.
func optionalDayQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	day, err := services.ParseDay(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func intQuery(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// requestToken prefers the Authorization bearer token and falls back to the
// auth cookie set on login.
func requestToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}
