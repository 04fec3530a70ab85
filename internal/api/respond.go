package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cuesplit/internal/service"
)

// writeJSON renders v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// fail renders the fixed error shape shared by every endpoint.
func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// writeError converts a service error into its HTTP form: validation
// failures become 400, missing entities 404, and everything else a
// generic 500 with the detail logged server-side only.
func writeError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		fail(w, http.StatusBadRequest, vErr.Error())
		return
	}
	var nfErr *service.NotFoundError
	if errors.As(err, &nfErr) {
		fail(w, http.StatusNotFound, nfErr.Error())
		return
	}

	slog.Error("Request failed", "error", err)
	fail(w, http.StatusInternalServerError, "Internal server error")
}

// decode parses the JSON request body into v, rejecting malformed input.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.Validationf("invalid request body")
	}
	return nil
}
