// Package api provides HTTP routing and handlers using the chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cuesplit/internal/middleware"
	"cuesplit/internal/service"
	"cuesplit/internal/storage"
	"cuesplit/internal/upload"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	members  *service.MemberService
	tables   *service.TableService
	bills    *service.BillService
	uploader *upload.Client
}

// NewHandler wires the handler against a store and media host client.
func NewHandler(store storage.Store, uploader *upload.Client) *Handler {
	return &Handler{
		members:  service.NewMemberService(store),
		tables:   service.NewTableService(store),
		bills:    service.NewBillService(store),
		uploader: uploader,
	}
}

// Routes builds the application router with the full middleware stack.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.ListMembers)
		r.Post("/", h.CreateMember)
		r.Put("/{id}", h.UpdateMember)
		r.Delete("/{id}", h.DeleteMember)
	})

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Post("/", h.CreateTable)
		r.Patch("/{id}", h.PatchTable)
	})

	r.Route("/bills", func(r chi.Router) {
		r.Get("/", h.ListBills)
		r.Post("/", h.CreateBill)
		r.Put("/{id}", h.UpdateBillStatus)
		r.Delete("/{id}", h.DeleteBill)
		r.Post("/{id}/payment", h.RecordPayment)
		r.Get("/{id}/payments", h.ListBillPayments)
	})

	r.Get("/payments", h.ListPayments)
	r.Post("/upload", h.Upload)

	return r
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
