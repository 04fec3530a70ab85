package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cuesplit/internal/service"
)

// ListTables handles GET /tables.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

// CreateTable handles POST /tables.
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTableRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	table, err := h.tables.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"table": table})
}

// PatchTable handles PATCH /tables/{id} with partial-update semantics.
func (h *Handler) PatchTable(w http.ResponseWriter, r *http.Request) {
	var req service.PatchTableRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	table, err := h.tables.Patch(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"table": table})
}
