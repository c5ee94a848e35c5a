package history

import (
	"errors"
	"strconv"
	"time"

	"otp-order-manager/constants"
	"otp-order-manager/logger"
	"otp-order-manager/models/order"
	historyService "otp-order-manager/services/history"
	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// Controller exposes the in-memory order history and request log.
type Controller struct {
	History *historyService.Service
	Logs    *logger.AsyncLogger
}

func NewHistoryController(svc *historyService.Service, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		History: svc,
		Logs:    asyncLogger,
	}
}

// List returns orders seen this process, newest first.
func (hc *Controller) List(c *fiber.Ctx) error {
	filter := historyService.ListFilter{
		Status: order.Status(c.Query("status")),
		Today:  c.QueryBool("today", false),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInvalidStatus,
		})
	}

	orders, err := hc.History.List(filter)
	if err != nil {
		logger.Error("Failed to list order history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInternalError,
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Order history fetched successfully",
		Data:    orders,
	})
}

// Summary returns per-status counts, optionally limited to today.
func (hc *Controller) Summary(c *fiber.Ctx) error {
	var since time.Time
	if c.QueryBool("today", false) {
		since = now.BeginningOfDay()
	}

	summary, err := hc.History.Summarize(since)
	if err != nil {
		logger.Error("Failed to summarize order history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInternalError,
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Order summary fetched successfully",
		Data:    summary,
	})
}

// Show returns one order by provider order id.
func (hc *Controller) Show(c *fiber.Ctx) error {
	o, err := hc.History.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, historyService.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Success: false,
				Message: constants.MessageOrderNotFound,
			})
		}
		logger.Error("Failed to fetch order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInternalError,
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Order fetched successfully",
		Data:    o,
	})
}

// RequestLogs returns the newest request log entries.
func (hc *Controller) RequestLogs(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLogLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	logs, err := hc.Logs.Recent(limit)
	if err != nil {
		logger.Error("Failed to read request logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageInternalError,
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Request logs fetched successfully",
		Data:    logs,
	})
}
