package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping_portal_backend/internal/address"
	"shipping_portal_backend/internal/declaration"
	"shipping_portal_backend/internal/http/router"
	"shipping_portal_backend/platform/config"
	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/novaposhta"
	"shipping_portal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	if !cfg.IsCarrierConfigured() {
		// Not fatal: the health endpoint reports this state and the data
		// endpoints answer with a configuration error.
		log.Warn("NOVA_POSHTA_API_KEY is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shared validator instance for dependency injection
	val := validator.New()

	carrier := novaposhta.NewClient(novaposhta.Config{
		APIURL:  cfg.GetCarrierAPIURL(),
		APIKey:  cfg.GetCarrierAPIKey(),
		Timeout: cfg.GetCarrierTimeout(),
	})

	if cfg.IsCacheEnabled() {
		log.Info("lookup cache enabled", "addr", cfg.GetRedisAddr(),
			"warehouseTTL", cfg.GetWarehouseCacheTTL(), "cityTTL", cfg.GetCityCacheTTL())
	}

	addressModule := address.NewModule(carrier, cfg, val, log)
	declarationModule := declaration.NewModule(carrier, cfg, val, log)

	engine := router.New(cfg, log, cfg.Env, addressModule, declarationModule)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
