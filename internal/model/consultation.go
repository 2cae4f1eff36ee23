package model

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format used in the API and in SQL parameters.
const DateLayout = "2006-01-02"

type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"   // Awaiting a call back
	ConsultationStatusConfirmed ConsultationStatus = "confirmed" // Confirmed by the agency
	ConsultationStatusCancelled ConsultationStatus = "cancelled" // Frees the slot
)

// ActiveConsultationStatuses are the statuses that hold a slot.
var ActiveConsultationStatuses = []ConsultationStatus{
	ConsultationStatusPending,
	ConsultationStatusConfirmed,
}

// Occupies reports whether a reservation with this status holds its slot.
func (s ConsultationStatus) Occupies() bool {
	return slices.Contains(ActiveConsultationStatuses, s)
}

type Consultation struct {
	ID        int64              `json:"id"`
	Date      string             `json:"date"` // YYYY-MM-DD
	Time      string             `json:"time"` // HH:MM
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Status    ConsultationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
