package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftboard/shiftboard-backend/config"
	"github.com/shiftboard/shiftboard-backend/internal/bootstrap"
	"github.com/shiftboard/shiftboard-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Options{Service: "shiftboard-api"}).WithError(err).Fatal("load config")
	}

	log := logging.New(logging.Options{
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
		File:    cfg.App.LogFile,
		JSON:    cfg.IsProduction(),
	})
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer stores.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, employee cache disabled")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Log:    log,
		Stores: stores,
		Redis:  rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).WithField("store", stores.Driver).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
