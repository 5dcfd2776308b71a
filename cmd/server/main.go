package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"solitaire/internal/config"
	"solitaire/internal/serverapp"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfgPath := os.Getenv("SOLITAIRE_CONFIG")
	if cfgPath == "" {
		cfgPath = "solitaire_config.yml"
	}
	cfg, err := config.Load(cfgPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("config file missing, using defaults", zap.String("path", cfgPath))
		cfg = config.Default()
	case err != nil:
		logger.Fatal("load config", zap.String("path", cfgPath), zap.Error(err))
	}
	cfg = config.FromEnv(cfg)

	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go app.RunTicker(ctx)

	addr := os.Getenv("SOLITAIRE_ADDR")
	if addr == "" {
		addr = ":42069"
	}
	srv := &http.Server{Addr: addr, Handler: app.Handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}
