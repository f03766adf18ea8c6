package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/leadfocus/internal/usecase"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	kind := usecase.ErrorKind(err)

	status := http.StatusInternalServerError
	switch kind {
	case usecase.KindValidation:
		status = http.StatusBadRequest
	case usecase.KindNotAuthenticated:
		status = http.StatusUnauthorized
	case usecase.KindNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, errorResponse{
		Error:   string(kind),
		Message: err.Error(),
	})
}
