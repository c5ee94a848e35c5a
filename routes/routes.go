package routes

import (
	"path/filepath"

	"otp-order-manager/config"
	"otp-order-manager/constants"
	"otp-order-manager/controllers/apikey"
	"otp-order-manager/controllers/catalog"
	"otp-order-manager/controllers/history"
	"otp-order-manager/controllers/order"
	"otp-order-manager/httpServices/provider"
	"otp-order-manager/logger"
	"otp-order-manager/middleware"
	"otp-order-manager/services/credential"
	historyService "otp-order-manager/services/history"
	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) *logger.AsyncLogger {
	providerClient := provider.NewClient(cfg.ProviderBaseURL, nil)
	store := credential.NewStore()
	credentialService := credential.NewCredentialService(store, providerClient)
	if cfg.ProviderAPIKey != "" {
		if err := credentialService.Seed(cfg.ProviderAPIKey); err != nil {
			logger.Error("Ignoring PROVIDER_API_KEY from configuration", err)
		} else {
			logger.Info("API key seeded from configuration")
		}
	}

	asyncLogger := logger.NewAsyncLogger(db)
	orderHistory := historyService.NewHistoryService(db)

	apiKeyController := apikey.NewAPIKeyController(credentialService, providerClient)
	catalogController := catalog.NewCatalogController(providerClient)
	orderController := order.NewOrderController(store, providerClient, orderHistory)
	historyController := history.NewHistoryController(orderHistory, asyncLogger)

	go asyncLogger.ProcessLog()

	api := app.Group("/api", middleware.AuditLog(asyncLogger))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Post("/set-key", apiKeyController.SetKey)
	api.Get("/countries", catalogController.Countries)
	api.Get("/operators", catalogController.Operators)
	api.Get("/services", catalogController.Services)

	/*=============================================================================
	| Key-Gated Routes
	===============================================================================*/
	requireKey := middleware.RequireAPIKey(store)
	api.Get("/balance", requireKey, apiKeyController.Balance)
	api.Get("/order", requireKey, orderController.Create)
	api.Get("/otp", requireKey, orderController.CheckOTP)
	api.Get("/cancel", requireKey, orderController.Cancel)

	api.Get("/history", requireKey, historyController.List)
	api.Get("/history/summary", requireKey, historyController.Summary)
	api.Get("/history/:id", requireKey, historyController.Show)
	api.Get("/logs", requireKey, historyController.RequestLogs)

	api.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Success: false,
			Message: constants.MessageRouteNotFound,
		})
	})

	/*=============================================================================
	| Frontend
	===============================================================================*/
	app.Static("/", cfg.PublicDir)
	app.Get("*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.PublicDir, "index.html"))
	})

	return asyncLogger
}
