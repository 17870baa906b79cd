package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvart/padel-scoreboard/internal/commentary"
	"github.com/edvart/padel-scoreboard/internal/config"
	"github.com/edvart/padel-scoreboard/internal/coordinator"
	"github.com/edvart/padel-scoreboard/internal/logger"
	"github.com/edvart/padel-scoreboard/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	if cfg.UmpireToken == "" {
		logg.Warn("UMPIRE_TOKEN not set. Anyone can change the score.")
	}
	if cfg.DevMode {
		logg.Info("Dev mode enabled")
	}

	// Initialize coordinator
	coord := coordinator.New(coordinator.Config{FlashDuration: cfg.FlashDuration}, logg)

	// Subscribers must be registered before the coordinator starts
	comm := commentary.New(logg, commentary.DefaultCapacity)
	commentaryEvents := coord.Subscribe()

	templates, err := web.DefaultTemplates()
	if err != nil {
		logg.WithError(err).Fatal("Failed to load templates")
	}

	server := web.NewServer(coord, comm, templates, web.Config{
		DevMode:     cfg.DevMode,
		UmpireToken: cfg.UmpireToken,
		CORSOrigins: cfg.CORSOrigins,
	}, logg)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go coord.Run(ctx)
	go comm.Run(ctx, commentaryEvents)

	// Start SSE hub
	server.StartSSE(coord.Events())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		logg.Info("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logg.WithError(err).Error("HTTP server shutdown error")
		}
	}()

	fmt.Printf("Scoreboard running on http://localhost:%s\n", cfg.Port)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logg.WithError(err).Fatal("HTTP server error")
	}

	logg.Info("Server stopped")
}
