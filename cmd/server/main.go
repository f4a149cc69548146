package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/billdigest/internal/api"
	"github.com/dgallion1/billdigest/internal/config"
	"github.com/dgallion1/billdigest/internal/mail"
	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/dgallion1/billdigest/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	writer, err := render.ForFormat(cfg.SummaryFormat)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var sender pipeline.Sender
	if cfg.ResendAPIKey != "" {
		sender = mail.NewResendSender(cfg.ResendAPIKey, log)
	} else {
		log.Warn("RESEND_API_KEY not set, finalize cannot send mail")
	}

	runner := pipeline.NewRunner(cfg, writer, sender, log)
	srv := api.NewServer(runner, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting billdigest server", "port", cfg.Port, "directory", cfg.Directory)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
