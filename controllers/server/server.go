package server

import (
	"errors"

	"otp-order-manager/constants"
	"otp-order-manager/httpServices/provider"
	"otp-order-manager/logger"
	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
)

// Relay writes a provider body to the client exactly as received, or the
// transport-error envelope when the call failed.
func Relay(c *fiber.Ctx, body []byte, err error) error {
	if err != nil {
		return TransportError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

// TransportError logs the cause and answers 502 without the upstream body.
func TransportError(c *fiber.Ctx, err error) error {
	if !errors.Is(err, provider.ErrTransport) {
		logger.Error("Unexpected relay failure on "+c.Path(), err)
	} else {
		logger.Error("Provider call failed on "+c.Path(), err)
	}
	return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
		Success: false,
		Message: constants.MessageProviderFailed,
	})
}
