package config

import (
	"fmt"
	"strings"

	"otp-order-manager/logger"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const DefaultProviderBaseURL = "https://api.jasaotp.id/v1"

// Config holds everything the server reads from the environment.
type Config struct {
	AppHost         string `env:"APP_HOST"`
	AppPort         string `env:"APP_PORT" envDefault:"3000"`
	FrontendURL     string `env:"FRONTEND_URL" envDefault:"*"`
	ProviderBaseURL string `env:"PROVIDER_BASE_URL" envDefault:"https://api.jasaotp.id/v1"`
	ProviderAPIKey  string `env:"PROVIDER_API_KEY"`
	PublicDir       string `env:"PUBLIC_DIR" envDefault:"./public"`
	LogDir          string `env:"LOG_DIR" envDefault:"log/app"`
	Debug           bool   `env:"APP_DEBUG" envDefault:"false"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.ProviderBaseURL = strings.TrimRight(cfg.ProviderBaseURL, "/")
	cfg.ProviderAPIKey = strings.TrimSpace(cfg.ProviderAPIKey)

	return cfg, nil
}

// ListenAddr returns host:port for app.Listen.
func (c *Config) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}
