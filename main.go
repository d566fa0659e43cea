package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"registration-api/catalog"
	"registration-api/config"
	"registration-api/db"
	"registration-api/handlers"
	"registration-api/mailer"
	"registration-api/middleware"
)

func main() {
	// Setup structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	if err := ensureDataFiles(cfg); err != nil {
		slog.Error("failed to prepare data directory", "error", err)
		os.Exit(1)
	}

	// Initialize Database
	database, err := db.NewDB(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}

	// Important: We use a short timeout for schema init to avoid pulling down the server on boot
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.InitSchema(ctx); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database schema initialized")

	// One-time legacy import, before the listener accepts traffic.
	imported, err := database.ImportLegacy(ctx, cfg.LegacyFile())
	if err != nil {
		slog.Warn("legacy registration import failed", "error", err)
	} else if imported > 0 {
		slog.Info("migrated legacy registrations into the database", "count", imported)
	}

	m, err := mailer.New(cfg)
	if err != nil {
		slog.Error("failed to configure mail transport", "error", err)
		os.Exit(1)
	}
	if m.Enabled() {
		slog.Info("smtp transport configured", "host", cfg.SMTPHost)
	} else {
		slog.Info("smtp not configured, confirmation and admin emails will be skipped")
	}

	// Set up Handlers
	h := &handlers.Handlers{
		DB:        database,
		Catalog:   catalog.New(cfg.EventsFile()),
		Mailer:    m,
		StaticDir: cfg.StaticDir,
	}

	// Standard Library Router
	mux := http.NewServeMux()

	// Public API
	mux.HandleFunc("GET /api/events", h.HandleListEvents)
	mux.HandleFunc("GET /api/events/{id}", h.HandleGetEvent)
	mux.HandleFunc("POST /api/register", h.HandleRegister)

	// Admin surface (Protected: shared secret)
	adminOnly := middleware.AdminSecret(cfg.AdminSecret)
	mux.Handle("GET /api/registrations", adminOnly(http.HandlerFunc(h.HandleListRegistrations)))
	mux.Handle("POST /api/registrations/{id}/resend", adminOnly(http.HandlerFunc(h.HandleResend)))

	// Everything else falls through to the UI document.
	mux.HandleFunc("/", h.HandleStatic)

	// Apply Global Middlewares
	var handler http.Handler = mux
	handler = middleware.Logging(handler)
	handler = middleware.Recovery(handler)

	// Configure Server with Timeouts
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful Shutdown Setup
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// 5 seconds to finish in-flight requests
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Close DB connection last
	if err := database.Close(); err != nil {
		slog.Error("failed to close db", "error", err)
	}

	slog.Info("server exited cleanly")
}

// ensureDataFiles creates the data directory and seeds the catalog and
// legacy files so a first boot starts from an empty state.
func ensureDataFiles(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	if err := seedFile(cfg.EventsFile(), []byte("{}\n")); err != nil {
		return err
	}
	return seedFile(cfg.LegacyFile(), []byte("[]\n"))
}

func seedFile(path string, content []byte) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
