package catalog

import (
	"otp-order-manager/controllers/server"
	"otp-order-manager/httpServices/provider"

	"github.com/gofiber/fiber/v2"
)

// Controller relays the ungated catalog lookups. Nothing is cached.
type Controller struct {
	Provider *provider.Client
}

func NewCatalogController(client *provider.Client) *Controller {
	return &Controller{Provider: client}
}

func (cc *Controller) Countries(c *fiber.Ctx) error {
	body, err := cc.Provider.Countries(c.UserContext())
	return server.Relay(c, body, err)
}

func (cc *Controller) Operators(c *fiber.Ctx) error {
	body, err := cc.Provider.Operators(c.UserContext(), c.Query("country"))
	return server.Relay(c, body, err)
}

func (cc *Controller) Services(c *fiber.Ctx) error {
	body, err := cc.Provider.Services(c.UserContext(), c.Query("country"))
	return server.Relay(c, body, err)
}
