// Package handler implements the JSON API surface. Every error response
// carries a machine-readable kind plus a human-readable message.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Error kinds.
const (
	errInvalidInput   = "invalid_input"
	errNotFound       = "not_found"
	errConflict       = "conflict"
	errDeliveryFailed = "delivery_failed"
	errInternal       = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
