// Package main is the entry point for the greet service HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/sebasr/greet-service/internal/auth"
	"github.com/sebasr/greet-service/internal/config"
	"github.com/sebasr/greet-service/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.Log.NewLogger()

	keys, err := auth.NewKeyStore(cfg.Auth.FunctionKeys, cfg.Auth.MasterKey)
	if err != nil {
		logger.WithError(err).Fatal("failed to load access keys")
	}
	if cfg.Auth.UsesDefaultMasterKey() {
		logger.Warn("MASTER_KEY not set - using the development master key, which opens every keyed route")
	}
	if keys.FunctionKeyCount() == 0 {
		logger.Warn("no function keys configured - function-level routes accept only the master key")
	}

	logger.WithFields(logrus.Fields{
		"port":            cfg.Server.Port,
		"function_keys":   keys.FunctionKeyCount(),
		"rate_limit":      cfg.RateLimit.Limit,
		"metrics_enabled": cfg.Metrics.Enabled,
	}).Info("configuration loaded")

	router := server.New(&server.Dependencies{
		Config: cfg,
		Keys:   keys,
		Logger: logger,
	})

	srv := &http.Server{Addr: server.Addr(cfg), Handler: router}
	go func() {
		logger.WithField("addr", srv.Addr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown")
		return
	}
	logger.Info("server stopped")
}
