package model

// ConsultationSettings is the administrator-managed booking window.
// Exactly one row is active at a time.
type ConsultationSettings struct {
	ID           int64  `json:"id"`
	StartTime    string `json:"start_time"`    // HH:MM
	EndTime      string `json:"end_time"`      // HH:MM
	SlotDuration int    `json:"slot_duration"` // minutes
	MaxPerDay    int    `json:"max_per_day"`
	IsActive     bool   `json:"is_active"`
}
