package handlers

import (
	"net/http"

	"github.com/xavierca1/leadfocus/internal/infra/http/middleware"
	"github.com/xavierca1/leadfocus/internal/usecase"
)

type FocusHandler struct {
	UC *usecase.DailyFocusUseCase
}

func NewFocusHandler(uc *usecase.DailyFocusUseCase) *FocusHandler {
	return &FocusHandler{UC: uc}
}

// Handle returns the day's focus list, building it on first read.
// GET /api/v1/focus?date=2026-09-01&force=true
func (h *FocusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	date := r.URL.Query().Get("date")
	force := r.URL.Query().Get("force") == "true"

	output, err := h.UC.Execute(r.Context(), userID, date, force)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
