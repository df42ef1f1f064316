package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// messageResponse is the `{message}` body used for every error and for
// update/delete outcome reports.
func messageResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}
