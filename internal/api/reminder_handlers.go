package api

import "net/http"

// RunReminderSweep handles POST /api/reminders/run: the manual trigger
// for the daily sweep, running the exact same logic.
func (h *Handler) RunReminderSweep(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Sweep(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
