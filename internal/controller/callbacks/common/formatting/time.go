package formatting

import (
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
)

// FormatDate renders YYYY-MM-DD as "Tue, 3 Mar 2026"; unparsable input is returned as is
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, 2 Jan 2006")
}

// FormatDateTime renders a date and an HH:MM slot
func FormatDateTime(date, slot string) string {
	return FormatDate(date) + " at " + slot
}

// FormatTimestamp renders a creation time in loc
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02 Jan 2006 15:04")
}
