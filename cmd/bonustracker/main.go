// Package main запускает HTTP-сервер трекера банковских бонусов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/bonus-tracker/internal/cache"
	"github.com/mmeshcher/bonus-tracker/internal/config"
	"github.com/mmeshcher/bonus-tracker/internal/handler"
	"github.com/mmeshcher/bonus-tracker/internal/repository"
	"github.com/mmeshcher/bonus-tracker/internal/seed"
	"github.com/mmeshcher/bonus-tracker/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer repo.Close()

	svc := service.NewService(repo, cache.New(cfg.CacheTTL, 2*cfg.CacheTTL), cfg.CacheTTL)
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFile != "" {
		catalog, err := seed.Load(cfg.SeedFile)
		if err != nil {
			sugar.Fatalw("seed file error", "file", cfg.SeedFile, "error", err.Error())
		}
		n, err := svc.Seed(ctx, catalog)
		if err != nil {
			sugar.Fatalw("seed error", "error", err.Error())
		}
		sugar.Infow("catalog seeded", "file", cfg.SeedFile, "bonuses", n)
	}

	h := handler.NewHandler(svc, logger, handler.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting bonus tracker server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Остановка сервера по сигналу или при ошибке в другой горутине
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
