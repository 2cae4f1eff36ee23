package model

// BlockedDate excludes a whole calendar date from booking.
type BlockedDate struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason,omitempty"`
}
