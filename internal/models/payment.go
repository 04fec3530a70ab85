package models

// Payment is one entry in the append-only payment log. A payment is
// written exactly once per participant transition from unpaid to paid,
// carrying the share that was owed at that moment.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// BillID and MemberID identify the participant row that was settled.
	BillID   string `json:"bill_id"`
	MemberID string `json:"member_id"`

	// Amount is the settled share in integer currency units.
	Amount int64 `json:"amount"`

	// Method is the payment method chosen at settlement time.
	Method string `json:"method"`

	// Status is always "completed"; the log only records finished payments.
	Status string `json:"status"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"created_at"`
}

// PaymentCompleted is the only status a logged payment ever has.
const PaymentCompleted = "completed"
