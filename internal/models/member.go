package models

// Member represents a registered player at the venue.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// Phone is the member's contact number. Required and unique; it is
	// how regulars are looked up at the counter.
	Phone string `json:"phone"`

	// Avatar is a URL to the member's profile picture. When the client
	// supplies none, a generated placeholder is assigned at creation.
	Avatar string `json:"avatar,omitempty"`

	// PaymentQR is a URL to the member's payment QR-code image, hosted
	// on the external media service.
	PaymentQR string `json:"payment_qr,omitempty"`

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile edit.
	UpdatedAt int64 `json:"updated_at"`
}
