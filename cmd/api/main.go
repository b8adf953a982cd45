package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/api"
	"tradingai-demo/internal/backend"
	"tradingai-demo/internal/config"
	"tradingai-demo/internal/logging"
	"tradingai-demo/internal/scheduler"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/stream"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	envDir := flag.String("env-dir", ".", "Directory holding .env files")
	flag.Parse()

	if err := config.LoadEnvFiles(*envDir); err != nil {
		log.Fatalf("Failed to load env files: %v", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Setup(cfg.Logging, cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Infof("Working directory: %s", wd)
	}

	store := session.NewStore(cfg.Server.SessionTTL, session.NewFactory(cfg.Simulation, scheduler.NewRealtime()))
	gateway := stream.NewGateway(cfg.Server.AllowedOrigins)

	var tester *backend.AuthTester
	if cfg.Backend.URL != "" {
		tester = backend.NewAuthTester(backend.NewSupabase(cfg.Backend))
		log.Infof("Auth-test backend: %s", cfg.Backend.URL)
	} else {
		log.Info("SUPABASE_URL not set, auth-test endpoints disabled")
	}

	router := api.NewRouter(api.Deps{
		Config:     cfg,
		Store:      store,
		Gateway:    gateway,
		AuthTester: tester,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Infof("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	store.Close()
	log.Info("Server stopped")
}
