package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/config"
	"github.com/mmeshcher/shops-admin/internal/handler"
	"github.com/mmeshcher/shops-admin/internal/middleware"
	"github.com/mmeshcher/shops-admin/internal/policy"
	"github.com/mmeshcher/shops-admin/internal/repository"
	"github.com/mmeshcher/shops-admin/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger.Fatal("Failed to create logger", zap.Error(err))
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	sugar.Infow(
		"Starting shops admin service",
	)

	cfg, err := config.ParseFlags()
	if err != nil {
		sugar.Fatalw("Configuration error",
			"error", err.Error())
	}

	sugar.Infow(
		"Configuration loaded",
		"server_address", cfg.ServerAddress,
		"database", cfg.DatabaseDSN != "",
		"migrations_path", cfg.MigrationsPath,
		"default_role", cfg.DefaultRole,
		"per_page", cfg.PerPage,
	)

	repo := openRepository(cfg, logger)
	defer repo.Close()

	shopService := service.NewShopService(repo, logger)

	grants := policy.DefaultGrants()
	for role, actions := range policy.ParseGrants(cfg.Grants) {
		grants[role] = actions
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := handler.NewHandler(
		shopService,
		logger,
		middleware.NewAuthMiddleware(cfg.SecretKey, cfg.DefaultRole, logger),
		policy.NewRolePolicy(grants),
		handler.Options{
			ShopRoles:   cfg.ShopRoles,
			TeamRoles:   cfg.TeamRoles,
			PerPage:     cfg.PerPage,
			CORSOrigins: cfg.CORSOrigins,
			Registry:    registry,
		},
	)

	r := h.SetupRouter()

	sugar.Infow(
		"Server starting",
		"address", cfg.ServerAddress,
	)

	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		sugar.Fatalw(err.Error(), "event", "start server")
	}
}

// openRepository picks PostgreSQL when a DSN is configured and falls back
// to process memory otherwise.
func openRepository(cfg *config.Config, logger *zap.Logger) repository.ShopRepository {
	if cfg.DatabaseDSN == "" {
		logger.Info("Using in-memory storage")
		return repository.NewMemoryRepository()
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseDSN, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL storage, falling back to memory", zap.Error(err))
		return repository.NewMemoryRepository()
	}

	logger.Info("Using PostgreSQL storage")
	return repo
}
