package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/colocmate/backend/internal/api"
	"github.com/colocmate/backend/internal/auth"
	"github.com/colocmate/backend/internal/config"
	"github.com/colocmate/backend/internal/notify"
	"github.com/colocmate/backend/internal/reminder"
	"github.com/colocmate/backend/internal/service"
	"github.com/colocmate/backend/internal/storage/sqlite"
	"github.com/colocmate/backend/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.MustLoad()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL)
		if err != nil {
			slog.Error("Failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		slog.Info("Notification broker connected")
	} else {
		notifier = notify.LogNotifier{}
		slog.Warn("AMQP_URL not set, notifications will only be logged")
	}

	expenses := service.NewExpenseService(store)
	shares := service.NewShareService(store)
	colocations := service.NewColocationService(store)
	reminders := reminder.New(store, notifier, cfg.ReminderHour)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reminders.Run(ctx)
	slog.Info("Reminder scheduler started", "hour", cfg.ReminderHour)

	mux := chi.NewRouter()
	handler := api.NewHandler(expenses, shares, colocations, reminders)
	api.RegisterRouters(mux, handler, auth.NewVerifier(cfg.JWTSecret), cfg.CORSOrigins)

	// h2c allows HTTP/2 without TLS so a proxy can speak h2 directly.
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	go func() {
		slog.Info("Server starting", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
