package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colocmate/backend/internal/middleware"
	"github.com/colocmate/backend/internal/service"
)

// CreateColocation handles POST /api/colocations. The caller becomes
// the publisher of the listing.
func (h *Handler) CreateColocation(w http.ResponseWriter, r *http.Request) {
	var in service.ColocationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	coloc, err := h.colocations.Create(r.Context(), &in, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, coloc)
}

// ListColocations handles GET /api/colocations.
func (h *Handler) ListColocations(w http.ResponseWriter, r *http.Request) {
	colocs, err := h.colocations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, colocs)
}

// GetColocation handles GET /api/colocations/{id}.
func (h *Handler) GetColocation(w http.ResponseWriter, r *http.Request) {
	coloc, err := h.colocations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coloc)
}

// UpdateColocation handles PUT /api/colocations/{id}.
func (h *Handler) UpdateColocation(w http.ResponseWriter, r *http.Request) {
	var in service.ColocationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	coloc, err := h.colocations.Update(r.Context(), chi.URLParam(r, "id"), &in, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coloc)
}

// DeleteColocation handles DELETE /api/colocations/{id}.
func (h *Handler) DeleteColocation(w http.ResponseWriter, r *http.Request) {
	if err := h.colocations.Delete(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
