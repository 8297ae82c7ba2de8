package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MezeLaw/iris-ui/internal/api"
	"github.com/MezeLaw/iris-ui/internal/infrastructure/config"
	redisdb "github.com/MezeLaw/iris-ui/internal/infrastructure/db/redis"
	"github.com/MezeLaw/iris-ui/internal/infrastructure/session"
	"github.com/MezeLaw/iris-ui/internal/upstream"
	"github.com/MezeLaw/iris-ui/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	store := session.NewStore(rdb)
	client := upstream.NewClient(cfg.API.BaseURL, cfg.API.Timeout, store, log)

	e, err := api.NewRouter(api.Dependencies{
		CookieName:   cfg.SessionCookie,
		Store:        store,
		Redis:        rdb,
		Auth:         upstream.NewAuthGateway(client, store),
		Patients:     upstream.NewPatientGateway(client),
		Appointments: upstream.NewAppointmentGateway(client),
		Reports:      upstream.NewReportGateway(client),
		Users:        upstream.NewUserGateway(client),
		Log:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router build failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.API.BaseURL).
		Msg("iris-ui listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
