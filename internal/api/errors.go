package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes the {"error": message} body all failure statuses use.
// The vendor UI only looks at the message string.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writePlainNotFound writes the plain-text 404 unmatched paths get.
func writePlainNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	//nolint:errcheck // Best-effort write
	w.Write([]byte("Not Found"))
}
