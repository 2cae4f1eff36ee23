package formatting

import "github.com/creativeflow/leads_backend/internal/model"

// StatusDisplay is the emoji and label shown for a status
type StatusDisplay struct {
	Emoji string
	Text  string
}

func GetConsultationStatusDisplay(status model.ConsultationStatus) StatusDisplay {
	displays := map[model.ConsultationStatus]StatusDisplay{
		model.ConsultationStatusPending:   {"⏳", "Pending"},
		model.ConsultationStatusConfirmed: {"✅", "Confirmed"},
		model.ConsultationStatusCancelled: {"❌", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}
