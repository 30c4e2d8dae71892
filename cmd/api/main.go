package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/teetime/campusride/internal/auth"
	"github.com/teetime/campusride/internal/config"
	httpx "github.com/teetime/campusride/internal/http"
	"github.com/teetime/campusride/internal/observability"
	"github.com/teetime/campusride/internal/repo/memory"
	"github.com/teetime/campusride/internal/service"
)

func main() {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing is best effort: a missing collector must not block startup
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "campusride-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Warn("tracer init failed, continuing without tracing", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(registry)

	// in-memory stores, sole source of truth. Lost on restart by design.
	users := memory.NewUsersRepo(prom)
	cars := memory.NewCarsRepo(prom)
	rides := memory.NewRidesRepo(prom)

	seedCtx, cancelSeed := config.WithTimeout(2 * time.Second)
	if err := memory.EnsureAdminUser(seedCtx, users, cfg); err != nil {
		log.Error("admin seed failed", "err", err)
		cancelSeed()
		os.Exit(1)
	}
	cancelSeed()

	// workflow services
	authService := service.NewAuthService(users, cfg.AllowedEmailDomains)
	rideService := service.NewRideService(rides, cars)
	carService := service.NewCarService(cars)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL)

	router := httpx.NewRouter(log, httpx.Deps{
		Cfg:      cfg,
		Prom:     prom,
		Registry: registry,
		JWT:      jwtManager,
		Auth:     authService,
		Rides:    rideService,
		Cars:     carService,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
