// ABOUTME: JSON error response helper for middleware
// ABOUTME: Writes the same {"error": ...} body the route handlers use

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/edududs/PoliticSystem/models"
)

// writeJSONError writes an error response as JSON with the given status code
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}
