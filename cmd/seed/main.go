package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/config"
	"github.com/mmeshcher/shops-admin/internal/repository"
	"github.com/mmeshcher/shops-admin/internal/service"
)

var shops = []struct {
	title string
	url   string
}{
	{title: "Комус", url: "https://comus.ru"},
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger.Fatal("Failed to create logger", zap.Error(err))
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.ParseFlags()
	if err != nil {
		sugar.Fatalw("Configuration error",
			"error", err.Error())
	}

	if cfg.DatabaseDSN == "" {
		sugar.Fatalw("Database DSN is required for seeding")
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseDSN, cfg.MigrationsPath, logger)
	if err != nil {
		sugar.Fatalw("Failed to open storage", "error", err.Error())
	}
	defer repo.Close()

	shopService := service.NewShopService(repo, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, s := range shops {
		shop, err := shopService.Create(ctx, s.title, s.url)
		if err != nil {
			sugar.Fatalw("Failed to seed shop", "title", s.title, "error", err.Error())
		}
		sugar.Infow("Shop seeded", "id", shop.ID, "title", shop.Title)
	}
}
