package apikey

import (
	"errors"

	"otp-order-manager/constants"
	"otp-order-manager/controllers/server"
	"otp-order-manager/httpServices/provider"
	"otp-order-manager/logger"
	"otp-order-manager/services/credential"
	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
)

// Controller handles key submission and the balance lookup.
type Controller struct {
	Credentials *credential.Service
	Provider    *provider.Client
}

func NewAPIKeyController(credentials *credential.Service, client *provider.Client) *Controller {
	return &Controller{
		Credentials: credentials,
		Provider:    client,
	}
}

// SetKey validates the submitted key against the provider and stores it.
func (ac *Controller) SetKey(c *fiber.Ctx) error {
	var req types.SetKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInvalidBody,
		})
	}

	balance, err := ac.Credentials.SetKey(c.UserContext(), req.APIKey)
	if err != nil {
		var rejected *credential.RejectedError
		switch {
		case errors.Is(err, credential.ErrEmptyKey), errors.Is(err, credential.ErrMalformedKey):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Success: false,
				Message: err.Error(),
			})
		case errors.As(err, &rejected):
			logger.Warning("Provider rejected submitted API key: " + rejected.Reason)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: rejected.Error(),
			})
		default:
			return server.TransportError(c, err)
		}
	}

	logger.Success("API key validated and stored")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: constants.MessageKeySaved,
		Balance: balance,
	})
}

// Balance relays balance.php with the stored key.
func (ac *Controller) Balance(c *fiber.Ctx) error {
	key, _ := ac.Credentials.Store.Get()
	body, err := ac.Provider.Balance(c.UserContext(), key)
	return server.Relay(c, body, err)
}
