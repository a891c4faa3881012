package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevgathuku/docue/internal/config"
	"github.com/kevgathuku/docue/internal/stubserver"
	"github.com/kevgathuku/docue/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Environment() == "development",
	})
	log.Info().
		Str("env", cfg.Environment()).
		Str("port", cfg.Stub.Port).
		Msg("starting docue stub server")

	e, err := stubserver.New(stubserver.Config{
		JWTSecret:     cfg.Stub.JWTSecret,
		TokenTTL:      cfg.Stub.TokenTTL,
		AdminEmail:    cfg.Stub.AdminEmail,
		AdminPassword: cfg.Stub.AdminPassword,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build stub server")
	}

	go func() {
		if err := e.Start(":" + cfg.Stub.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("stub server stopped")
}
