package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const contextRequestIDKey = "requestid"

func (handler *Handler) requestLog(c *fiber.Ctx) *logrus.Entry {
	entry := handler.log.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	})
	if requestID, ok := c.Locals(contextRequestIDKey).(string); ok && requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}
