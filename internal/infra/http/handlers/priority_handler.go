package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadfocus/internal/infra/http/middleware"
	"github.com/xavierca1/leadfocus/internal/usecase"
)

type PriorityHandler struct {
	UC *usecase.CalculatePriorityUseCase
}

func NewPriorityHandler(uc *usecase.CalculatePriorityUseCase) *PriorityHandler {
	return &PriorityHandler{UC: uc}
}

// Handle computes (or serves the cached) priority score for one lead.
// POST /api/v1/leads/{leadID}/priority?force=true
func (h *PriorityHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	leadID := chi.URLParam(r, "leadID")
	force := r.URL.Query().Get("force") == "true"

	score, err := h.UC.Execute(r.Context(), userID, leadID, force)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, score)
}
