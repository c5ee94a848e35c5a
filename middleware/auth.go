package middleware

import (
	"otp-order-manager/constants"
	"otp-order-manager/services/credential"
	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
)

// RequireAPIKey stops the request before any provider call when no key
// has been stored.
func RequireAPIKey(store *credential.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !store.IsSet() {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: constants.MessageKeyNotSet,
			})
		}
		return c.Next()
	}
}
