package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	catalogapi "github.com/decorvista/ar-backend/internal/api/catalog"
	"github.com/decorvista/ar-backend/internal/api/sessions"
	"github.com/decorvista/ar-backend/internal/catalog"
	"github.com/decorvista/ar-backend/internal/config"
	"github.com/decorvista/ar-backend/internal/middleware"
	"github.com/decorvista/ar-backend/internal/scene"
	"github.com/decorvista/ar-backend/internal/storage"
	"github.com/decorvista/ar-backend/internal/storage/postgres"
	valkeystore "github.com/decorvista/ar-backend/internal/storage/valkey"
	"github.com/decorvista/ar-backend/internal/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	seed := catalog.DefaultSeed()
	if cfg.Catalog.SeedURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		loader := catalog.NewSeedLoader(cfg.Catalog.SeedURL, logger)
		if remote, err := loader.Fetch(ctx); err != nil {
			logger.Warn("remote catalog seed unavailable, using built-in seed", zap.Error(err))
		} else if len(remote) > 0 {
			seed = remote
		}
		cancel()
	}
	cat := catalog.New(seed, logger)

	registry := scene.NewRegistry(cat, logger)
	prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ar_active_scenes",
		Help: "Scenes currently held in the session registry.",
	}, func() float64 { return float64(registry.Count()) }))

	var snapshots storage.Chain
	if cfg.Valkey.Enabled {
		vk, err := valkeystore.NewSnapshotStore(cfg.Valkey.Addr, cfg.Valkey.Password, cfg.Valkey.TTL, logger)
		if err != nil {
			logger.Warn("valkey snapshot store unavailable", zap.Error(err))
		} else {
			defer vk.Close()
			snapshots = append(snapshots, vk)
		}
	}
	if cfg.Postgres.Enabled {
		pg, err := postgres.NewSnapshotStore(cfg.Postgres.DSN, logger)
		if err != nil {
			logger.Warn("postgres snapshot store unavailable", zap.Error(err))
		} else {
			defer pg.Close()
			if err := pg.EnsureSchema(context.Background()); err != nil {
				logger.Error("failed to ensure snapshot schema", zap.Error(err))
			}
			snapshots = append(snapshots, pg)
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	router := mux.NewRouter()
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigin))
	router.Use(middleware.Identity(cfg.Auth.JWTSecret, logger))
	router.Use(middleware.Metrics())

	sessions.RegisterRoutes(router, &sessions.Handler{
		Registry:  registry,
		Catalog:   cat,
		Snapshots: snapshots,
		Hub:       hub,
		Logger:    logger,
	})
	catalogapi.RegisterRoutes(router, &catalogapi.Handler{
		Catalog: cat,
		Logger:  logger,
	})

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
