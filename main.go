package main

import (
	"os"
	"os/signal"
	"syscall"

	"otp-order-manager/config"
	"otp-order-manager/database"
	"otp-order-manager/logger"
	"otp-order-manager/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: " + err.Error())
	}
	logger.Init(cfg.LogDir, cfg.Debug)

	db, err := database.InitDB(database.MemoryDSN)
	if err != nil {
		logger.Error("Failed to open the in-memory database", err)
		return
	}

	app := routes.NewApp(cfg)
	asyncLogger := routes.SetupRoutes(app, db, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("Shutdown failed", err)
		}
	}()

	logger.Printf("Server is running on %s relaying to %s", cfg.ListenAddr(), cfg.ProviderBaseURL)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.Error("Server stopped", err)
	}
	asyncLogger.Close()
}
