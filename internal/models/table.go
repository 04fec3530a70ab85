package models

// Table status values.
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
)

// Table represents a physical billiards table.
type Table struct {
	// ID is the unique identifier for the table (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g. "Table 3").
	Name string `json:"name"`

	// Type is the table kind (e.g. "pool", "carom", "snooker").
	Type string `json:"type"`

	// HourlyRate is the rental price per hour in integer currency units.
	HourlyRate int64 `json:"hourly_rate"`

	// Status is either TableAvailable or TableOccupied. It flips to
	// occupied when a bill opens on the table and back to available when
	// the bill completes or is cancelled.
	Status string `json:"status"`
}
