package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const accessLogFormat = "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n"

// NewApp builds the fiber application with middleware and routes.
func NewApp(handler *Handler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Period Calendar",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	}))
	app.Use(logger.New(logger.Config{
		Format: accessLogFormat,
		Output: log.Out,
	}))
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	app.Use(func(c *fiber.Ctx) error {
		return apiError(c, fiber.StatusNotFound, "not found")
	})
	return app
}

func jsonErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return apiError(c, fiberErr.Code, fiberErr.Message)
		}
		log.WithError(err).WithField("path", c.Path()).Error("unhandled request error")
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
