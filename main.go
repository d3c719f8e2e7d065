package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news_moves/internal/app"
	"news_moves/internal/config"
	"news_moves/internal/handler/httpapi"
	"news_moves/internal/logger"
	"news_moves/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	if !config.LoadEnvFile() {
		log.Println("⚠️  .env file not found, using system environment.")
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	lg := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := app.New(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("❌ Failed to set up provider: %v", err)
	}
	defer provider.Close(context.Background())

	sched, err := scheduler.New(provider.Service, cfg.Schedule.Interval, cfg.Schedule.RunOnStart, lg)
	if err != nil {
		log.Fatalf("❌ Failed to set up scheduler: %v", err)
	}

	if cfg.HTTP.Addr != "" {
		var history httpapi.History
		if provider.Journal != nil {
			history = provider.Journal
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpapi.NewProviderHandler(provider.Service, history, 0, lg).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			lg.Info("control API listening", "addr", cfg.HTTP.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("control API stopped", "error", err)
			}
		}()
		defer shutdownServer(srv, 5*time.Second, lg)
	}

	lg.Info("starting news provider", "url", cfg.Source.URL, "signer", cfg.Move.Signer, "interval", cfg.Schedule.Interval.String())

	if err := sched.Run(ctx); err != nil {
		lg.Error("scheduler failed", "error", err)
		return
	}

	lg.Info("program interrupted by user, exiting")
}

// shutdownServer drains in-flight requests, giving up after timeout.
func shutdownServer(srv *http.Server, timeout time.Duration, lg *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Warn("control API shutdown failed", "error", err)
	}
}
