package handler

import (
	"encoding/json"
	"net/http"

	"jokemeter/internal/api/v1/dto"
	"jokemeter/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponseDTO{Error: code, Message: message})
}

// customerID extracts the customer set by IdentityMiddleware, answering 401
// itself when it is missing.
func customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "customer not found in context")
		return "", false
	}
	return id, true
}
