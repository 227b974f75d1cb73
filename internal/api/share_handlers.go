package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/colocmate/backend/internal/middleware"
)

// DeleteShare handles DELETE /api/shares/{id}. The share must belong to
// the caller; anyone else's share reads as not found.
func (h *Handler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.shares.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSharePaid handles PUT /api/shares/{id}/paid?paid=.
func (h *Handler) SetSharePaid(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	paid, err := strconv.ParseBool(r.URL.Query().Get("paid"))
	if err != nil {
		http.Error(w, "paid must be true or false", http.StatusBadRequest)
		return
	}

	if err := h.shares.SetPaid(r.Context(), chi.URLParam(r, "id"), userID, paid); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
