package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voxcrm/backend/internal/config"
	"github.com/voxcrm/backend/internal/db"
	httpapi "github.com/voxcrm/backend/internal/http"
	"github.com/voxcrm/backend/internal/service"
	"github.com/voxcrm/backend/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "voxcrm-backend").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var source sheets.Source
	if cfg.GoogleCredentials == "" {
		source = sheets.StaticSource{}
		logger.Info().Msg("no Google credentials configured, using static sheet source")
	} else {
		source, err = sheets.NewGoogleSource(ctx, cfg.GoogleCredentials)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create sheets client")
		}
	}

	owner := &service.OwnerResolver{
		Store:        store,
		DefaultEmail: cfg.IngestionOwnerEmail,
		Logger:       logger,
	}
	scheduler := &service.Scheduler{
		Sync: &service.SyncService{
			Store:  store,
			Source: source,
			Owner:  owner,
			Logger: logger,
		},
		Interval: cfg.SyncInterval,
		Logger:   logger,
	}
	if cfg.SheetID != "" {
		scheduler.Configure(service.SheetConfig{SheetID: cfg.SheetID, SheetName: cfg.SheetName})
	}
	scheduler.Start(ctx)

	voice := &service.VoiceService{Store: store, Owner: owner, Logger: logger}

	router := httpapi.Router(cfg, store, scheduler, voice, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
