package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"restaurante/internal/commons"
	"restaurante/internal/config"
	"restaurante/internal/customer"
	"restaurante/internal/infrastructure/database"
	"restaurante/internal/infrastructure/logger"
	"restaurante/internal/order"
	"restaurante/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	dialect, err := database.ParseDialect(cfg.Database.Driver)
	if err != nil {
		zapLogger.Fatal("invalid database driver", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, dialect, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", string(dialect)))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect, zapLogger); err != nil {
			zapLogger.Fatal("running migrations", zap.Error(err))
		}
	}

	validator := commons.NewValidator()

	customerCtrl, err := customer.NewModule(db, dialect, cfg.Auth, validator, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating customer module", zap.Error(err))
	}
	orderCtrl := order.NewModule(db, dialect, cfg.Order, validator, zapLogger)

	router := server.NewRouter(
		server.RouterConfig{AllowedOrigins: cfg.Server.CORSAllowedOrigins},
		customerCtrl,
		orderCtrl,
		db,
		zapLogger,
	)

	srv := server.New(cfg.Server, router, zapLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
		return
	case <-ctx.Done():
		zapLogger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
