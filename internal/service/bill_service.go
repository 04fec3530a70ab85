package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"cuesplit/internal/models"
	"cuesplit/internal/split"
	"cuesplit/internal/storage"
)

// BillService manages the bill lifecycle: creation with its participant
// set, status transitions, per-participant payment tracking, and the
// payment log.
type BillService struct {
	store storage.Store
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// CreateBillRequest carries the fields for opening a bill.
type CreateBillRequest struct {
	Date         string   `json:"date"`
	TotalAmount  int64    `json:"total_amount"`
	TableID      string   `json:"table_id"`
	PayerID      string   `json:"payer_id"`
	Participants []string `json:"participants"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Notes        string   `json:"notes"`
}

// PaymentRequest toggles one participant's payment flag. Status is a
// pointer so that an absent field is distinguishable from false.
type PaymentRequest struct {
	ParticipantID string `json:"participantId"`
	Status        *bool  `json:"status"`
	Method        string `json:"method"`
}

// List returns all bills enriched with organizer, participants and the
// member-id to paid-flag map, newest first.
func (s *BillService) List(ctx context.Context) ([]models.BillDetail, error) {
	return s.store.ListBills(ctx)
}

// Create validates and opens a bill. The bill row, all participant rows
// and the table occupation are written as one atomic unit; the payer's
// participant row starts out paid.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*models.Bill, error) {
	if req.Date == "" {
		return nil, Validationf("date is required")
	}
	if req.TotalAmount <= 0 {
		return nil, Validationf("total_amount must be positive")
	}
	if req.TableID == "" {
		return nil, Validationf("table_id is required")
	}
	if req.PayerID == "" {
		return nil, Validationf("payer_id is required")
	}
	if len(req.Participants) == 0 {
		return nil, Validationf("participants must not be empty")
	}
	if !slices.Contains(req.Participants, req.PayerID) {
		return nil, Validationf("payer must be one of the participants")
	}
	seen := map[string]bool{}
	for _, id := range req.Participants {
		if seen[id] {
			return nil, Validationf("duplicate participant %q", id)
		}
		seen[id] = true
	}

	if _, err := s.store.GetTable(ctx, req.TableID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFoundf("table not found")
		}
		return nil, err
	}
	for _, id := range req.Participants {
		if _, err := s.store.GetMember(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, NotFoundf("member %s not found", id)
			}
			return nil, err
		}
	}

	bill := &models.Bill{
		Date:        req.Date,
		TotalAmount: req.TotalAmount,
		TableID:     req.TableID,
		PayerID:     req.PayerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
	}
	err := s.store.CreateBill(ctx, storage.BillCreate{
		Bill:           bill,
		ParticipantIDs: req.Participants,
	})
	if err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, err
	}

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"table_id", bill.TableID,
		"total_amount", bill.TotalAmount,
		"participants", len(req.Participants),
	)
	return bill, nil
}

// UpdateStatus transitions a bill to the given status. Unknown values
// are rejected without touching the row; leaving the active state frees
// the bill's table.
func (s *BillService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidBillStatus(status) {
		return Validationf("invalid status %q", status)
	}

	if err := s.store.UpdateBillStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFoundf("bill not found")
		}
		slog.Error("UpdateBillStatus failed", "bill_id", id, "error", err)
		return err
	}

	slog.Info("Bill status updated", "bill_id", id, "status", status)
	return nil
}

// RecordPayment toggles one participant's paid flag. On the transition
// to paid the derived even share is appended to the payment log; the
// operation is idempotent under repeated identical calls.
func (s *BillService) RecordPayment(ctx context.Context, billID string, req PaymentRequest) error {
	bill, err := s.store.GetBill(ctx, billID)
	if errors.Is(err, storage.ErrNotFound) {
		return NotFoundf("bill not found")
	}
	if err != nil {
		return err
	}

	if req.ParticipantID == "" {
		return Validationf("participantId is required")
	}
	if req.Status == nil {
		return Validationf("status is required")
	}

	participants, err := s.store.ListParticipants(ctx, billID)
	if err != nil {
		return err
	}
	share, err := split.EvenShare(bill.TotalAmount, len(participants))
	if err != nil {
		return err
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}

	err = s.store.SetParticipantPaid(ctx, storage.PaymentUpdate{
		BillID:   billID,
		MemberID: req.ParticipantID,
		Paid:     *req.Status,
		Method:   method,
		Share:    share,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFoundf("participant not found on bill")
		}
		slog.Error("SetParticipantPaid failed", "bill_id", billID, "member_id", req.ParticipantID, "error", err)
		return err
	}

	slog.Info("Payment recorded",
		"bill_id", billID,
		"member_id", req.ParticipantID,
		"paid", *req.Status,
		"share", share,
	)
	return nil
}

// Delete removes a bill and its participant rows in dependency order.
func (s *BillService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NotFoundf("bill not found")
		}
		slog.Error("DeleteBill failed", "bill_id", id, "error", err)
		return err
	}
	slog.Info("Bill deleted", "bill_id", id)
	return nil
}

// ListPayments returns the full payment log, newest first.
func (s *BillService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}

// ListBillPayments returns the payment log for one bill.
func (s *BillService) ListBillPayments(ctx context.Context, billID string) ([]models.Payment, error) {
	if _, err := s.store.GetBill(ctx, billID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFoundf("bill not found")
		}
		return nil, err
	}
	return s.store.ListBillPayments(ctx, billID)
}
