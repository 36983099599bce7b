// Package server boots the application: configuration, logging, database,
// cache, storage, the event pipeline and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/routes"
	"github.com/uyumazulvi/eticaret-stok-yonetim/config"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/cache"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/database"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/logger"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/router"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/storage"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/workerpool"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ws"
)

const (
	shutdownTimeout  = 10 * time.Second
	publishPoolSize  = 8
	readHeaderWindow = 5 * time.Second
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogger, err := logger.Setup()
	if err != nil {
		return err
	}
	defer closeLogger()

	db, err := database.Connect()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redis, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("cache unavailable, dashboard caching disabled", "error", err)
	}
	defer redis.Close()

	disks, err := storage.Connect()
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	pool := workerpool.New(publishPoolSize)
	defer pool.Shutdown()

	publishers := []events.Publisher{events.NewWSPublisher(hub)}
	if url := config.Get("AMQP_URL", ""); url != "" {
		amqpPub, err := events.NewAMQPPublisher(url)
		if err != nil {
			logger.Warn("amqp unavailable, broker publishing disabled", "error", err)
		} else {
			defer amqpPub.Close()
			publishers = append(publishers, amqpPub)
		}
	}

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		DB:        db,
		Cache:     redis,
		Disks:     disks,
		Hub:       hub,
		Publisher: events.NewMulti(pool, publishers...),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: readHeaderWindow,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
