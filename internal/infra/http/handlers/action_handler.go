package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/leadfocus/internal/infra/http/middleware"
	"github.com/xavierca1/leadfocus/internal/usecase"
)

type ActionHandler struct {
	UC          *usecase.TrackActionUseCase
	rateLimiter *RateLimiter
}

func NewActionHandler(uc *usecase.TrackActionUseCase) *ActionHandler {
	return &ActionHandler{
		UC:          uc,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min per IP
	}
}

// Handle records a lead action.
// POST /api/v1/actions
func (h *ActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:   "RATE_LIMITED",
			Message: "too many requests, please try again later",
		})
		return
	}

	var input usecase.TrackActionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(usecase.KindValidation),
			Message: "invalid JSON body",
		})
		return
	}

	action, err := h.UC.Execute(r.Context(), middleware.UserID(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, action)
}
