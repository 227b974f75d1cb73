// Package api exposes the REST surface of the backend: JSON endpoints
// under /api for expenses, shares, colocations and the manual reminder
// trigger, plus the metrics and health endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/colocmate/backend/internal/auth"
	"github.com/colocmate/backend/internal/metrics"
	"github.com/colocmate/backend/internal/middleware"
	"github.com/colocmate/backend/internal/reminder"
	"github.com/colocmate/backend/internal/service"
	"github.com/colocmate/backend/internal/storage"
)

// Handler encapsulates the HTTP handling logic over the service layer.
type Handler struct {
	expenses    *service.ExpenseService
	shares      *service.ShareService
	colocations *service.ColocationService
	reminders   *reminder.Service
}

// NewHandler creates the REST handler.
func NewHandler(expenses *service.ExpenseService, shares *service.ShareService,
	colocations *service.ColocationService, reminders *reminder.Service) *Handler {
	return &Handler{
		expenses:    expenses,
		shares:      shares,
		colocations: colocations,
		reminders:   reminders,
	}
}

// RegisterRouters mounts every route on the mux. All /api routes
// require a valid bearer token.
func RegisterRouters(mux *chi.Mux, h *Handler, verifier *auth.Verifier, allowedOrigins []string) {
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.RequestLogger)

	mux.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireAuth(verifier))

		api.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.CreateExpense)
			r.Get("/", h.ListExpenses)
			r.Get("/own-expenses", h.OwnExpenses)
			r.Get("/byUserEmail", h.ExpenseStatsByEmail)
			r.Get("/stats", h.ColocationStatsByEmail)
			r.Get("/colocation/{colocationId}", h.ExpensesForColocation)
			r.Get("/colocation/{colocationId}/balance", h.Balances)
			r.Get("/user/{userId}", h.UserSummary)
			r.Get("/{id}", h.GetExpense)
			r.Put("/{id}", h.UpdateExpense)
			r.Patch("/{id}/shares", h.UpdateExpenseShares)
			r.Delete("/{id}", h.DeleteExpense)
		})

		api.Route("/shares", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteShare)
			r.Put("/{id}/paid", h.SetSharePaid)
		})

		api.Route("/colocations", func(r chi.Router) {
			r.Post("/", h.CreateColocation)
			r.Get("/", h.ListColocations)
			r.Get("/{id}", h.GetColocation)
			r.Put("/{id}", h.UpdateColocation)
			r.Delete("/{id}", h.DeleteColocation)
		})

		api.Post("/reminders/run", h.RunReminderSweep)
	})

	mux.Handle("/metrics", metrics.Handler())
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
