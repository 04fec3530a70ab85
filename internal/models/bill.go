package models

// Bill status values. Transitions are one-directional: an active bill
// may complete or be cancelled, never the other way around.
const (
	BillActive    = "active"
	BillCompleted = "completed"
	BillCancelled = "cancelled"
)

// ValidBillStatus reports whether s is one of the known bill statuses.
func ValidBillStatus(s string) bool {
	return s == BillActive || s == BillCompleted || s == BillCancelled
}

// Bill represents one session at a table whose total is split evenly
// among its participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Date is the session date in YYYY-MM-DD form.
	Date string `json:"date"`

	// TotalAmount is the full bill amount in integer currency units.
	TotalAmount int64 `json:"total_amount"`

	// TableID references the table the session was played on.
	TableID string `json:"table_id"`

	// PayerID references the member who paid the venue up front.
	// The payer's own participant row is marked paid at creation.
	PayerID string `json:"payer_id"`

	// Status is one of BillActive, BillCompleted, BillCancelled.
	Status string `json:"status"`

	// StartTime and EndTime bound the session (RFC 3339). EndTime is
	// empty while the session is still running.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`
}

// Participant links a member to a bill with their payment state.
// The (BillID, MemberID) pair is unique.
type Participant struct {
	BillID   string `json:"bill_id"`
	MemberID string `json:"member_id"`

	// HasPaid reports whether this member has settled their share.
	HasPaid bool `json:"has_paid"`

	// PaymentMethod records how the share was settled (e.g. "cash",
	// "bank_transfer", "momo"). Empty until HasPaid flips true.
	PaymentMethod string `json:"payment_method,omitempty"`

	// PaidAt is the Unix timestamp of settlement, zero while unpaid.
	PaidAt int64 `json:"paid_at,omitempty"`
}

// Organizer is the payer as embedded in bill listings: just enough for
// the client to render a name, face and payment QR next to the bill.
type Organizer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	PaymentQR string `json:"payment_qr,omitempty"`
}

// BillDetail is a bill enriched for listing: the payer joined in as
// Organizer, the participant id list, and a member-id to paid-flag map.
// The map is assembled from one participant row at a time, so it never
// depends on any positional pairing of aggregated columns.
type BillDetail struct {
	Bill

	// Participants holds the member IDs on this bill, in insertion order.
	Participants []string `json:"participants"`

	// Payments maps member ID to whether that member has paid.
	Payments map[string]bool `json:"payments"`

	// Organizer is the payer's display info.
	Organizer Organizer `json:"organizer"`
}
