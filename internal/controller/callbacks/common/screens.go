package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common/formatting"
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common/keyboard"
	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/service"
	"github.com/go-telegram/bot/models"
)

// BuildDayScreen renders the reservations and free slots of a day with day navigation
func BuildDayScreen(summary *service.DaySummary, today string) (string, *models.InlineKeyboardMarkup) {
	text := DayText(summary)

	day, err := time.Parse(model.DateLayout, summary.Date)
	if err != nil {
		return text, nil
	}
	todayDate, err := time.Parse(model.DateLayout, today)
	if err != nil {
		todayDate = day
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.DayNavigationRow(day, todayDate)...).
		Build()

	return text, kb
}

// DayText is the body of the day screen and of the daily digest
func DayText(summary *service.DaySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>%s</b>\n", formatting.FormatDate(summary.Date))

	if summary.Availability != nil && summary.Availability.IsBlocked {
		sb.WriteString("⛔️ Blocked for bookings\n")
	}

	active := 0
	for _, c := range summary.Consultations {
		if c.Status.Occupies() {
			active++
		}
	}

	if len(summary.Consultations) == 0 {
		sb.WriteString("\nNo consultations.\n")
	} else {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", formatting.Pluralize(active, "consultation"))
		for _, c := range summary.Consultations {
			status := formatting.GetConsultationStatusDisplay(c.Status)
			fmt.Fprintf(&sb, "%s %s %s, %s\n",
				status.Emoji,
				c.Time,
				html.EscapeString(c.Name),
				html.EscapeString(c.Phone),
			)
		}
	}

	if summary.Availability != nil && !summary.Availability.IsBlocked {
		slots := summary.Availability.Slots
		fmt.Fprintf(&sb, "\n🟢 %s free", formatting.Pluralize(len(slots), "slot"))
		if len(slots) > 0 {
			sb.WriteString(": " + strings.Join(slots, ", "))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
