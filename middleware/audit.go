package middleware

import (
	"otp-order-manager/logger"
	"otp-order-manager/utils"

	"github.com/gofiber/fiber/v2"
)

// AuditLog records every request once the handler chain has finished.
func AuditLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		requestID, _ := c.Locals("requestid").(string)
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c, requestID))
		return err
	}
}
