package utils

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes the flat {"error": message} body used by every
// failing endpoint
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: message})
}
