package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListPayments handles GET /payments: the full append-only payment log.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.bills.ListPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListBillPayments handles GET /bills/{id}/payments.
func (h *Handler) ListBillPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.bills.ListBillPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
