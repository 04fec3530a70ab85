// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"cuesplit/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
// Callers distinguish it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("not found")

// BillCreate carries everything that must be written atomically when a
// bill is opened: the bill row, its participant rows, and the table
// status flip to occupied.
type BillCreate struct {
	Bill *models.Bill

	// ParticipantIDs are the member IDs splitting the bill. The payer's
	// row is marked paid at creation.
	ParticipantIDs []string
}

// PaymentUpdate describes a change to one participant's payment flag.
type PaymentUpdate struct {
	BillID   string
	MemberID string
	Paid     bool

	// Method is the payment method recorded on a transition to paid.
	Method string

	// Share is the derived per-person amount logged on a transition to
	// paid. The store appends exactly one payment record per unpaid→paid
	// edge; repeating the same update is a no-op on the log.
	Share int64
}

// Store defines the interface for cuesplit storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Members.
	CreateMember(ctx context.Context, m *models.Member) error
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// GetMemberByPhone returns the member registered under phone, or
	// ErrNotFound when the number is unclaimed.
	GetMemberByPhone(ctx context.Context, phone string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMember(ctx context.Context, m *models.Member) error
	DeleteMember(ctx context.Context, id string) error

	// Tables.
	CreateTable(ctx context.Context, t *models.Table) error
	GetTable(ctx context.Context, id string) (*models.Table, error)
	ListTables(ctx context.Context) ([]models.Table, error)
	UpdateTable(ctx context.Context, t *models.Table) error

	// Bills. CreateBill writes the bill, all participants and the table
	// occupation in one transaction; a failure leaves no partial rows.
	CreateBill(ctx context.Context, bc BillCreate) error
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	ListBills(ctx context.Context) ([]models.BillDetail, error)
	ListParticipants(ctx context.Context, billID string) ([]models.Participant, error)
	// UpdateBillStatus flips the bill status and, when the bill leaves
	// the active state, frees its table in the same transaction.
	UpdateBillStatus(ctx context.Context, id, status string) error
	// SetParticipantPaid applies a PaymentUpdate transactionally.
	SetParticipantPaid(ctx context.Context, u PaymentUpdate) error
	// DeleteBill removes participant rows before the bill row itself.
	DeleteBill(ctx context.Context, id string) error

	// Payments.
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListBillPayments(ctx context.Context, billID string) ([]models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
