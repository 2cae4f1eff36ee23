package keyboard

import (
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/go-telegram/bot/models"
)

// NoopData acknowledges a press without doing anything
const NoopData = "noop"

// DayPrefix starts the callback data of a day view: day:YYYY-MM-DD
const DayPrefix = "day:"

func DayButton(text string, day time.Time) models.InlineKeyboardButton {
	return Button(text, DayPrefix+day.Format(model.DateLayout))
}

// DayNavigationRow links the previous and next day around day, with a Today shortcut unless day is today
func DayNavigationRow(day, today time.Time) []models.InlineKeyboardButton {
	prev := day.AddDate(0, 0, -1)
	next := day.AddDate(0, 0, 1)

	row := []models.InlineKeyboardButton{
		DayButton("◀️ "+prev.Format("Mon 2 Jan"), prev),
	}
	if day.Equal(today) {
		row = append(row, Button("• Today •", NoopData))
	} else {
		row = append(row, DayButton("Today", today))
	}
	row = append(row, DayButton(next.Format("Mon 2 Jan")+" ▶️", next))

	return row
}
