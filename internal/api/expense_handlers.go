package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/colocmate/backend/internal/middleware"
	"github.com/colocmate/backend/internal/service"
)

// CreateExpense handles POST /api/expenses.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	expense, err := h.expenses.Create(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// ListExpenses handles GET /api/expenses. With a colocationId query the
// result is the colocation's expenses visible to the caller; without
// one it is every expense the caller pays or participates in.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	colocationID := r.URL.Query().Get("colocationId")

	expenses, err := h.expenses.VisibleToUser(r.Context(), colocationID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// OwnExpenses handles GET /api/expenses/own-expenses. share=true lists
// expenses where the caller holds a share; otherwise those they paid.
func (h *Handler) OwnExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	asParticipant, _ := strconv.ParseBool(r.URL.Query().Get("share"))

	expenses, err := h.expenses.ForUser(r.Context(), userID, asParticipant)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetExpense handles GET /api/expenses/{id}.
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// ExpensesForColocation handles GET /api/expenses/colocation/{colocationId}.
func (h *Handler) ExpensesForColocation(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ForColocation(r.Context(), chi.URLParam(r, "colocationId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Balances handles GET /api/expenses/colocation/{colocationId}/balance.
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.expenses.Balances(r.Context(), chi.URLParam(r, "colocationId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

// UpdateExpense handles PUT /api/expenses/{id}.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	expense, err := h.expenses.Update(r.Context(), chi.URLParam(r, "id"), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// UpdateExpenseShares handles PATCH /api/expenses/{id}/shares.
func (h *Handler) UpdateExpenseShares(w http.ResponseWriter, r *http.Request) {
	var shares []service.ShareInput
	if err := json.NewDecoder(r.Body).Decode(&shares); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if len(shares) == 0 {
		http.Error(w, "shares required", http.StatusBadRequest)
		return
	}

	expense, err := h.expenses.UpdateShares(r.Context(), chi.URLParam(r, "id"), shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// DeleteExpense handles DELETE /api/expenses/{id}. Only the user who
// paid the expense upfront may delete it.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.expenses.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserSummary handles GET /api/expenses/user/{userId}?paid=.
func (h *Handler) UserSummary(w http.ResponseWriter, r *http.Request) {
	paid, _ := strconv.ParseBool(r.URL.Query().Get("paid"))

	summary, err := h.expenses.UserSummary(r.Context(), chi.URLParam(r, "userId"), paid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ExpenseStatsByEmail handles GET /api/expenses/byUserEmail?userEmail=.
func (h *Handler) ExpenseStatsByEmail(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		http.Error(w, "userEmail required", http.StatusBadRequest)
		return
	}

	stats, err := h.expenses.StatsByEmail(r.Context(), userEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ColocationStatsByEmail handles GET /api/expenses/stats?userEmail=.
func (h *Handler) ColocationStatsByEmail(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		http.Error(w, "userEmail required", http.StatusBadRequest)
		return
	}

	stats, err := h.expenses.ColocationStatsByEmail(r.Context(), userEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
