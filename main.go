// @title EU AI Act Compliance API
// @version 1.0
// @description Backend for AI Act use case assessment and compliance scoring.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"aiact_backend/internal/app"
	"aiact_backend/internal/config"
	"aiact_backend/pkg/configwatcher"
	"aiact_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	watch := flag.Bool("watch-config", false, "reload configuration on file change")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
			logger.Log.Info("Configuration reloaded; restart required for server settings")
		})
	}

	application.Run()
}
