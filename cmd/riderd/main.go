package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/adapter/alert"
	"github.com/the-devesta/khaaonow-delivery/internal/adapter/geosim"
	"github.com/the-devesta/khaaonow-delivery/internal/adapter/handler"
	"github.com/the-devesta/khaaonow-delivery/internal/adapter/logger"
	"github.com/the-devesta/khaaonow-delivery/internal/adapter/rest"
	"github.com/the-devesta/khaaonow-delivery/internal/adapter/storage/sqlite"
	ws "github.com/the-devesta/khaaonow-delivery/internal/adapter/websocket"
	"github.com/the-devesta/khaaonow-delivery/internal/config"
	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/service"
	"github.com/the-devesta/khaaonow-delivery/internal/core/service/location"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	sessions, err := sqlite.Open(cfg.SessionDBPath)
	if err != nil {
		appLogger.Fatal("unable to open session store", zap.Error(err))
	}
	defer sessions.Close()

	api := rest.NewClient(rest.Options{
		BaseURL:      cfg.APIBaseURL,
		Timeout:      cfg.HTTPTimeout,
		RetryMax:     cfg.RetryMax,
		RetryBackoff: cfg.RetryBackoff,
	}, sessions, appLogger)

	realtime := ws.NewClient(cfg.SocketURL, appLogger)
	realtime.Connect()
	defer realtime.Close()

	alerter := alert.NewConsole(appLogger)

	store := service.NewLifecycle(api, realtime, alerter, appLogger)
	store.BindRealtime()
	defer store.Close()

	auth := service.NewAuthService(api, sessions, appLogger)
	partner := service.NewPartnerService(api, appLogger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	if auth.SessionValid(startCtx) {
		// Restore any in-flight delivery from before the restart.
		if err := store.FetchAssigned(startCtx); err != nil {
			appLogger.Warn("could not restore assigned order", zap.Error(err))
		}
	} else {
		appLogger.Warn("no valid session; authenticate before going online")
	}
	cancelStart()

	position := geosim.New(domain.Location{Latitude: 28.5355, Longitude: 77.391}, func() *domain.Location {
		snap := store.Snapshot()
		if snap.Active == nil {
			return nil
		}
		return snap.Active.CurrentTarget()
	})

	reporter := location.NewReporter(store, position, alerter, appLogger, location.Options{
		Interval:          cfg.LocationInterval,
		DistanceThreshold: cfg.LocationDistanceM,
	})
	defer reporter.Stop()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler.NewStatusHandler(store, partner, reporter).Register(r, cfg.Env)

	srv := &http.Server{
		Addr:    ":" + cfg.StatusPort,
		Handler: r,
	}

	go func() {
		appLogger.Info("starting status server", zap.String("port", cfg.StatusPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down agent...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("agent exiting")
}
