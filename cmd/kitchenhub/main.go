package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hausfrau/internal/database"
	"hausfrau/internal/health"
	"hausfrau/internal/logging"
	"hausfrau/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("KITCHENHUB_LOG_LEVEL"))

	port := os.Getenv("KITCHENHUB_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("KITCHENHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "kitchenhub.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	healthState := health.NewState()
	srv := server.New(db, healthState, logger)

	httpServer := &http.Server{
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		slog.Error("failed to bind port", "port", port, "error", err)
		os.Exit(1)
	}

	go func() {
		// Ready once the listener is bound
		healthState.SetReady()
		logger.Info("kitchenhub listening", "port", port)
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
