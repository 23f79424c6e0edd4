package main

import (
	"context"
	"flag"
	"log"
	"os"

	"StockAdvisor/internal/di"
	"StockAdvisor/pkg/config"
	applogger "StockAdvisor/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	if err := app.Run(context.Background()); err != nil {
		app.Logger().Error("app error", applogger.Error(err))
		cleanup()
		os.Exit(1)
	}
}
