package res

import (
	"encoding/json"
	"net/http"
)

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// OK wraps data in the success envelope.
func OK(w http.ResponseWriter, data any, statusCode int) {
	Json(w, map[string]any{"success": true, "data": data}, statusCode)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"success": false, "error": msg}, statusCode)
}
