package api

import (
	"errors"
	"log/slog"
	"net/http"

	"cuesplit/internal/upload"
)

// Upload handles POST /upload: forwards a data-URI image to the external
// media host and returns the hosted URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Image == "" {
		fail(w, http.StatusBadRequest, "no image provided")
		return
	}

	url, err := h.uploader.Upload(r.Context(), req.Image)
	if errors.Is(err, upload.ErrInvalidImage) {
		fail(w, http.StatusBadRequest, "invalid image format")
		return
	}
	if err != nil {
		slog.Error("Upload failed", "error", err)
		fail(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
