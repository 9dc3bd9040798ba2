// Command gateway runs the Afya Yetu case-work gateway: an HTTP service that
// fronts the health-program registry with session handling, form and list
// controllers, and a dashboard view.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afya-yetu/casework-gateway/internal/api"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
	"github.com/afya-yetu/casework-gateway/internal/core/service"
	"github.com/afya-yetu/casework-gateway/internal/infrastructure/config"
	"github.com/afya-yetu/casework-gateway/internal/infrastructure/store"
	"github.com/afya-yetu/casework-gateway/internal/infrastructure/upstream"
	"github.com/afya-yetu/casework-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Session mirror ---
	var sessionStore ports.SessionStore
	switch cfg.Session.Store {
	case "redis":
		sessionStore = store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session mirror: redis")
	default:
		fs := store.NewFileStore(cfg.Session.File)
		sessionStore = fs
		log.Info().Str("path", fs.Path()).Msg("session mirror: file")
	}

	// --- Upstream registry client and session ---
	registry := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	authRepo := upstream.NewAuthRepository(registry)
	sessions := service.NewSessionService(authRepo, sessionStore, log)
	registry.BindSession(sessions)

	// Resolve before serving so the first guarded request doesn't pay for the
	// startup probe.
	startup, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sess := sessions.Resolve(startup)
	cancel()
	log.Info().Str("state", string(sess.State)).Msg("session resolved")

	e := api.NewRouter(api.Dependencies{
		Registry: registry,
		Sessions: sessions,
		Store:    sessionStore,
		Log:      log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("upstream", cfg.Upstream.BaseURL).Msg("gateway listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("gateway stopped")
}
