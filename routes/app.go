package routes

import (
	"time"

	"otp-order-manager/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// NewApp builds the fiber app with the server-wide middleware.
func NewApp(cfg *config.Config) *fiber.App {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		ReadBufferSize:        32768, // 32KB read buffer
		WriteBufferSize:       32768, // 32KB write buffer
		ReadTimeout:           time.Second * 30,
		WriteTimeout:          time.Second * 30,
		BodyLimit:             1 * 1024 * 1024,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	return app
}
