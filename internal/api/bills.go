package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cuesplit/internal/service"
)

// ListBills handles GET /bills, returning bills enriched with the
// organizer and per-member payment map.
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// CreateBill handles POST /bills.
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBillRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	bill, err := h.bills.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"billId": bill.ID})
}

// UpdateBillStatus handles PUT /bills/{id}.
func (h *Handler) UpdateBillStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.bills.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteBill handles DELETE /bills/{id}.
func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := h.bills.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RecordPayment handles POST /bills/{id}/payment.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.bills.RecordPayment(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
