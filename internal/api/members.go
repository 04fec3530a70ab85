package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cuesplit/internal/service"
)

// ListMembers handles GET /members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// CreateMember handles POST /members.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.members.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"member": member})
}

// UpdateMember handles PUT /members/{id} with partial-update semantics.
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.members.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": member})
}

// DeleteMember handles DELETE /members/{id}.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
