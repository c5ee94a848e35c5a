package order

import (
	"errors"

	"otp-order-manager/controllers/server"
	"otp-order-manager/httpServices/provider"
	"otp-order-manager/logger"
	orderModel "otp-order-manager/models/order"
	"otp-order-manager/services/credential"
	"otp-order-manager/services/history"
	providerTypes "otp-order-manager/types/provider"

	"github.com/gofiber/fiber/v2"
)

// Controller relays the gated order operations and mirrors their
// outcome into the server-side history. The relayed body is never altered.
type Controller struct {
	Store    *credential.Store
	Provider *provider.Client
	History  *history.Service
}

func NewOrderController(store *credential.Store, client *provider.Client, historyService *history.Service) *Controller {
	return &Controller{
		Store:    store,
		Provider: client,
		History:  historyService,
	}
}

// Create relays order.php.
func (oc *Controller) Create(c *fiber.Ctx) error {
	key, _ := oc.Store.Get()
	country := c.Query("country")
	service := c.Query("service")
	operator := c.Query("operator")

	body, err := oc.Provider.Order(c.UserContext(), key, country, service, operator)
	if err == nil {
		var data providerTypes.OrderData
		if decodeErr := provider.DecodeData(body, &data); decodeErr == nil && data.OrderID != "" {
			record := &orderModel.Order{
				OrderID:     data.OrderID.String(),
				Phone:       data.Number.String(),
				Country:     country,
				Operator:    operator,
				ServiceCode: service,
			}
			if recordErr := oc.History.RecordPending(record); recordErr != nil {
				logger.Error("Failed to record order in history", recordErr)
			}
		}
	}
	return server.Relay(c, body, err)
}

// CheckOTP relays sms.php.
func (oc *Controller) CheckOTP(c *fiber.Ctx) error {
	key, _ := oc.Store.Get()
	orderID := c.Query("orderId")

	body, err := oc.Provider.SMS(c.UserContext(), key, orderID)
	if err == nil {
		var data providerTypes.OTPData
		if decodeErr := provider.DecodeData(body, &data); decodeErr == nil {
			_, histErr := oc.History.Complete(orderID, data.OTP.String())
			oc.logHistoryError(orderID, histErr)
		}
	}
	return server.Relay(c, body, err)
}

// Cancel relays cancel.php.
func (oc *Controller) Cancel(c *fiber.Ctx) error {
	key, _ := oc.Store.Get()
	orderID := c.Query("orderId")

	body, err := oc.Provider.Cancel(c.UserContext(), key, orderID)
	if err == nil {
		var data providerTypes.CancelData
		if decodeErr := provider.DecodeData(body, &data); decodeErr == nil {
			_, histErr := oc.History.Cancel(orderID, data.RefundedAmount.String())
			oc.logHistoryError(orderID, histErr)
		}
	}
	return server.Relay(c, body, err)
}

func (oc *Controller) logHistoryError(orderID string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, history.ErrNotFound), errors.Is(err, history.ErrInvalidTransition):
		logger.Warning("History not updated for order " + orderID + ": " + err.Error())
	default:
		logger.Error("Failed to update history for order "+orderID, err)
	}
}
